package plan

import "math"

// Progress is the derived "skills planned" counter.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// NewProgress builds a Progress from a count and the catalog size.
func NewProgress(completed, total int) Progress {
	return Progress{Completed: completed, Total: total, Percent: Percent(completed, total)}
}

// Percent is round(completed/total*100), rounding half away from zero. It is 0 for
// an empty catalog.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
