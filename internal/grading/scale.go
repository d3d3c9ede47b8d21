package grading

// Letter is a letter grade such as "A" or "F".
type Letter string

// Remark is the human-readable label attached to a letter grade.
type Remark string

// NotApplicable is returned for both letter and remark when the obtainable mark is zero.
const NotApplicable = "-"

// Band is one row of a grading table. A score belongs to the first band
// whose MinPercent it reaches.
type Band struct {
	MinPercent float64 `json:"min_percent"`
	Letter     Letter  `json:"letter"`
	Remark     Remark  `json:"remark"`
}

// Scale is an ordered grading table, highest band first.
type Scale []Band

// DefaultScale is the canonical table applied to every row, report and leaderboard.
var DefaultScale = Scale{
	{MinPercent: 70, Letter: "A", Remark: "Excellent"},
	{MinPercent: 60, Letter: "B", Remark: "Very Good"},
	{MinPercent: 50, Letter: "C", Remark: "Good"},
	{MinPercent: 45, Letter: "D", Remark: "Fair"},
	{MinPercent: 0, Letter: "F", Remark: "Poor"},
}

// Grade maps a mark to its letter and remark using the scale.
func (s Scale) Grade(obtained, max int) (Letter, Remark) {
	if max <= 0 || len(s) == 0 {
		return NotApplicable, NotApplicable
	}

	percent := Percentage(obtained, max)
	for _, band := range s {
		if percent >= band.MinPercent {
			return band.Letter, band.Remark
		}
	}

	last := s[len(s)-1]
	return last.Letter, last.Remark
}

// Grade grades a mark against DefaultScale.
func Grade(obtained, max int) (Letter, Remark) {
	return DefaultScale.Grade(obtained, max)
}

// Percentage returns 100*obtained/max, or 0 when max is not positive.
func Percentage(obtained, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(obtained) * 100 / float64(max)
}

// IsLow reports whether obtained is below half of max. Components with no
// obtainable mark are never flagged.
func IsLow(obtained, max int) bool {
	if max <= 0 {
		return false
	}
	return obtained*2 < max
}
