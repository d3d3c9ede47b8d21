package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		obtained int
		max      int
		letter   Letter
		remark   Remark
	}{
		{"top of A", 100, 100, "A", "Excellent"},
		{"A boundary", 70, 100, "A", "Excellent"},
		{"just below A", 69, 100, "B", "Very Good"},
		{"B boundary", 60, 100, "B", "Very Good"},
		{"C boundary", 50, 100, "C", "Good"},
		{"D boundary", 45, 100, "D", "Fair"},
		{"below D cut-off", 44, 100, "F", "Poor"},
		{"forty percent fails", 40, 100, "F", "Poor"},
		{"zero", 0, 100, "F", "Poor"},
		{"non-hundred max", 85, 120, "A", "Excellent"},
		{"over the max", 130, 100, "A", "Excellent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			letter, remark := Grade(tt.obtained, tt.max)
			assert.Equal(t, tt.letter, letter)
			assert.Equal(t, tt.remark, remark)
		})
	}
}

func TestGrade_ZeroMaxIsNotApplicable(t *testing.T) {
	letter, remark := Grade(0, 0)
	assert.Equal(t, Letter(NotApplicable), letter)
	assert.Equal(t, Remark(NotApplicable), remark)

	letter, remark = Grade(12, 0)
	assert.Equal(t, Letter(NotApplicable), letter)
	assert.Equal(t, Remark(NotApplicable), remark)
}

func TestGrade_IsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		letter, remark := Grade(67, 100)
		assert.Equal(t, Letter("B"), letter)
		assert.Equal(t, Remark("Very Good"), remark)
	}
}

func TestScale_EmptyScale(t *testing.T) {
	letter, _ := Scale{}.Grade(50, 100)
	assert.Equal(t, Letter(NotApplicable), letter)
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 67.5, Percentage(135, 200), 1e-9)
	assert.Equal(t, 0.0, Percentage(10, 0))
	assert.Equal(t, 0.0, Percentage(0, -1))
}

func TestIsLow(t *testing.T) {
	assert.True(t, IsLow(9, 20))
	assert.False(t, IsLow(10, 20))
	assert.False(t, IsLow(0, 0))
	assert.True(t, IsLow(29, 60))
}
