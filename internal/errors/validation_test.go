package errors

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("student_name", "is required", "")

	assert.Equal(t, "student_name", err.Field)
	assert.Equal(t, "is required", err.Message)
	assert.Equal(t, "validation error on field 'student_name': is required", err.Error())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())
	assert.False(t, errs.HasErrors())

	errs.Add("term", "is required", nil)
	assert.Equal(t, "validation failed: term is required", errs.Error())

	errs.Add("session", "is required", nil)
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
	assert.True(t, errs.HasErrors())
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Class string `validate:"max=3"`
		Term  string `validate:"term"`
	}

	v := validator.New()
	require.NoError(t, v.RegisterValidation("term", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "First Term"
	}))

	errs := ToValidationErrors(v.Struct(payload{Class: "JSS2A", Term: "Fourth Term"}))
	require.Len(t, errs, 3)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "is required", byField["Name"].Message)
	assert.Equal(t, "must be at most 3 characters", byField["Class"].Message)
	assert.Equal(t, "must be First Term, Second Term, or Third Term", byField["Term"].Message)
	assert.Equal(t, "term", byField["Term"].Rule)
}

func TestToValidationErrors_NestedPaths(t *testing.T) {
	type pair struct {
		Max int `json:"max" validate:"min=1"`
	}
	type row struct {
		Exam pair `json:"exam"`
	}
	type payload struct {
		Rows []row `json:"rows" validate:"required,min=1,dive"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	errs := ToValidationErrors(v.Struct(payload{Rows: []row{{Exam: pair{Max: 60}}, {Exam: pair{Max: 0}}}}))
	require.Len(t, errs, 1)
	assert.Equal(t, "rows[1].exam.max", errs[0].Field)
	assert.Equal(t, "must be at least 1", errs[0].Message)

	errs = ToValidationErrors(v.Struct(payload{Rows: []row{}}))
	require.Len(t, errs, 1)
	assert.Equal(t, "rows", errs[0].Field)
	assert.Equal(t, "must list at least 1", errs[0].Message)
}

func TestToValidationErrors_IgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, ToValidationErrors(assert.AnError))
}
