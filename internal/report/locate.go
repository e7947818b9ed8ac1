package report

import (
	"time"

	"github.com/google/uuid"
)

// Find returns the section with the given id, searching depth-first in
// stored order. Returns nil when the id is absent. If the tree holds
// duplicate ids the first match wins.
func Find(sections []*Section, id string) *Section {
	for _, s := range sections {
		if s.ID == id {
			return s
		}
		if found := Find(s.Subsections, id); found != nil {
			return found
		}
	}
	return nil
}

// The mutation helpers below all share the same contract: they act on the
// first section matching id and report whether anything changed. A missing
// id is a no-op, not an error — callers obtained the id from the tree they
// are editing.

// SetStatus updates the status of a section.
func SetStatus(sections []*Section, id string, status Status) bool {
	s := Find(sections, id)
	if s == nil {
		return false
	}
	s.Status = status
	return true
}

// SetContent replaces the content of a section.
func SetContent(sections []*Section, id, content string) bool {
	s := Find(sections, id)
	if s == nil {
		return false
	}
	s.Content = content
	return true
}

// AddNote appends a note to a section and returns it.
func AddNote(sections []*Section, id, content string) (Note, bool) {
	s := Find(sections, id)
	if s == nil {
		return Note{}, false
	}
	note := Note{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.Notes = append(s.Notes, note)
	return note, true
}

// UpdateNote rewrites the content of a note identified by noteID.
func UpdateNote(sections []*Section, id, noteID, content string) bool {
	s := Find(sections, id)
	if s == nil {
		return false
	}
	for i := range s.Notes {
		if s.Notes[i].ID == noteID {
			s.Notes[i].Content = content
			s.Notes[i].UpdatedAt = time.Now().Format(time.RFC3339)
			return true
		}
	}
	return false
}

// RemoveNote deletes a note identified by noteID.
func RemoveNote(sections []*Section, id, noteID string) bool {
	s := Find(sections, id)
	if s == nil {
		return false
	}
	for i := range s.Notes {
		if s.Notes[i].ID == noteID {
			s.Notes = append(s.Notes[:i], s.Notes[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuestions replaces the generated questions of a section wholesale.
func SetQuestions(sections []*Section, id string, questions []string) bool {
	s := Find(sections, id)
	if s == nil {
		return false
	}
	s.GeneratedQuestions = append([]string(nil), questions...)
	return true
}

// SetRecommendations replaces the recommendations of a section wholesale.
func SetRecommendations(sections []*Section, id string, recs []string) bool {
	s := Find(sections, id)
	if s == nil {
		return false
	}
	s.Recommendations = append([]string(nil), recs...)
	return true
}

// RemoveSection deletes the section with the given id from the tree.
// Used only for explicit chapter deletion by an administrator.
func RemoveSection(sections *[]*Section, id string) bool {
	for i, s := range *sections {
		if s.ID == id {
			*sections = append((*sections)[:i], (*sections)[i+1:]...)
			return true
		}
		if RemoveSection(&s.Subsections, id) {
			return true
		}
	}
	return false
}
