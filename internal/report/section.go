package report

import (
	"time"

	"github.com/google/uuid"
)

// Status is the editorial state of a section. Any status may follow any
// other; there is no transition table.
type Status string

const (
	StatusNotStarted  Status = "not_started"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusNeedsReview Status = "needs_review"
	StatusValidated   Status = "validated"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusNeedsReview, StatusValidated:
		return true
	}
	return false
}

// Note is a free-text scratchpad entry attached to a section.
type Note struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Section is one node of the report outline. Subsections recurse to any
// depth. IDs are unique across the whole tree; Order is unique among
// direct siblings.
type Section struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Required    bool    `json:"required"`
	Order       int     `json:"order"`
	ParentID    string  `json:"parent_id,omitempty"`
	MinPages    float64 `json:"min_pages,omitempty"`
	MaxPages    float64 `json:"max_pages,omitempty"`
	Status      Status  `json:"status"`

	Content string `json:"content"`
	Notes   []Note `json:"notes"`

	// Replaced wholesale by the latest AI response; never merged.
	GeneratedQuestions []string `json:"generated_questions"`
	Recommendations    []string `json:"recommendations"`

	Subsections []*Section `json:"subsections"`
}

// Plan is the complete outline of a report.
type Plan struct {
	Sections      []*Section `json:"sections"`
	TotalMinPages int        `json:"total_min_pages"`
	TotalMaxPages int        `json:"total_max_pages"`
}

// Report is a full report: outline plus author and internship metadata.
type Report struct {
	ID               string `json:"id"`
	StudentName      string `json:"student_name"`
	StudentFirstname string `json:"student_firstname"`
	Semester         string `json:"semester"`
	CompanyName      string `json:"company_name"`
	CompanyLocation  string `json:"company_location"`
	StartDate        string `json:"internship_start_date"`
	EndDate          string `json:"internship_end_date"`
	TutorName        string `json:"tutor_name"`
	Plan             Plan   `json:"plan"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// AIProviderConfig selects the LLM provider used for drafting.
type AIProviderConfig struct {
	Provider string `json:"provider"` // "openai" or "mistral"
	APIKey   string `json:"api_key"`
	Model    string `json:"model,omitempty"`
}

// Metadata holds the report-creation inputs.
type Metadata struct {
	StudentName      string `json:"student_name"`
	StudentFirstname string `json:"student_firstname"`
	Semester         string `json:"semester"`
	CompanyName      string `json:"company_name"`
	CompanyLocation  string `json:"company_location"`
	StartDate        string `json:"internship_start_date"`
	EndDate          string `json:"internship_end_date"`
	TutorName        string `json:"tutor_name"`
}

// New creates a report with the default plan and a fresh id.
func New(meta Metadata) *Report {
	now := time.Now().Format(time.RFC3339)
	return &Report{
		ID:               uuid.NewString(),
		StudentName:      meta.StudentName,
		StudentFirstname: meta.StudentFirstname,
		Semester:         meta.Semester,
		CompanyName:      meta.CompanyName,
		CompanyLocation:  meta.CompanyLocation,
		StartDate:        meta.StartDate,
		EndDate:          meta.EndDate,
		TutorName:        meta.TutorName,
		Plan:             DefaultPlan(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Clone returns a deep copy of the report. Mutation helpers operate on a
// clone so the previous tree reference stays untouched.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	out := *r
	out.Plan = Plan{
		Sections:      cloneSections(r.Plan.Sections),
		TotalMinPages: r.Plan.TotalMinPages,
		TotalMaxPages: r.Plan.TotalMaxPages,
	}
	return &out
}

func cloneSections(sections []*Section) []*Section {
	if sections == nil {
		return nil
	}
	out := make([]*Section, len(sections))
	for i, s := range sections {
		c := *s
		c.Notes = append([]Note(nil), s.Notes...)
		c.GeneratedQuestions = append([]string(nil), s.GeneratedQuestions...)
		c.Recommendations = append([]string(nil), s.Recommendations...)
		c.Subsections = cloneSections(s.Subsections)
		out[i] = &c
	}
	return out
}
