package report

import "math"

// Progress is a summary of completion across the whole tree. Only
// required sections count; a required section that is neither completed
// nor in_progress lands in NotStarted regardless of its actual status
// (needs_review and validated are deliberately bucketed there).
type Progress struct {
	TotalSections      int     `json:"total_sections"`
	Completed          int     `json:"completed"`
	InProgress         int     `json:"in_progress"`
	NotStarted         int     `json:"not_started"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// CalculateProgress derives completion statistics from the tree. Pure
// function of the Required/Status fields; no side effects.
func CalculateProgress(sections []*Section) Progress {
	var total, completed, inProgress int

	var count func([]*Section)
	count = func(secs []*Section) {
		for _, s := range secs {
			if s.Required {
				total++
				switch s.Status {
				case StatusCompleted:
					completed++
				case StatusInProgress:
					inProgress++
				}
			}
			count(s.Subsections)
		}
	}
	count(sections)

	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(completed)/float64(total)*1000) / 10
	}

	return Progress{
		TotalSections:      total,
		Completed:          completed,
		InProgress:         inProgress,
		NotStarted:         total - completed - inProgress,
		ProgressPercentage: pct,
	}
}
