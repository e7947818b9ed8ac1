// Package assembly flattens a report tree into a numbered outline for
// preview and export. Numbering is positional and recomputed on every
// call; it is never stored on the sections.
package assembly

import (
	"strconv"
	"strings"

	"github.com/mlevasseur/reportforge/internal/report"
)

// Entry is one node of the linearized document. It carries everything a
// renderer needs to produce the table of contents and the body in one
// pass over the slice of roots.
type Entry struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Numbering string        `json:"numbering"`
	Level     int           `json:"level"`
	Status    report.Status `json:"status"`
	Content   string        `json:"content"`

	// Placeholder is set when the section has neither content nor notes,
	// so the renderer emits an explicit "section to complete" marker
	// instead of a blank body.
	Placeholder bool `json:"placeholder"`

	Children []Entry `json:"children"`
}

// PlaceholderText is rendered for sections flagged as Placeholder.
const PlaceholderText = "[Section to complete]"

// Outline numbers the tree: eligible top-level sections get 1, 2, …,
// children get parent.1, parent.2, …. The cover pseudo-section keeps its
// position but receives no number. Stored order is preserved.
func Outline(sections []*report.Section) []Entry {
	entries := make([]Entry, 0, len(sections))
	counter := 0
	for _, s := range sections {
		num := ""
		if s.ID != report.CoverSectionID {
			counter++
			num = strconv.Itoa(counter)
		}
		entries = append(entries, buildEntry(s, num, 1))
	}
	return entries
}

func buildEntry(s *report.Section, numbering string, level int) Entry {
	e := Entry{
		ID:          s.ID,
		Title:       s.Title,
		Numbering:   numbering,
		Level:       level,
		Status:      s.Status,
		Content:     s.Content,
		Placeholder: strings.TrimSpace(s.Content) == "" && len(s.Notes) == 0,
	}
	for i, child := range s.Subsections {
		childNum := strconv.Itoa(i + 1)
		if numbering != "" {
			childNum = numbering + "." + childNum
		}
		e.Children = append(e.Children, buildEntry(child, childNum, level+1))
	}
	return e
}

// Flatten walks the outline depth-first into a single list, which is the
// shape the table-of-contents renderer consumes.
func Flatten(entries []Entry) []Entry {
	var out []Entry
	var walk func([]Entry)
	walk = func(es []Entry) {
		for _, e := range es {
			children := e.Children
			e.Children = nil
			out = append(out, e)
			walk(children)
		}
	}
	walk(entries)
	return out
}

// PlainText renders the outline as numbered headings with body text,
// used for compliance analysis and previews. Sections without content
// fall back to their notes, then to the placeholder marker.
func PlainText(sections []*report.Section) string {
	var sb strings.Builder
	var walk func(entries []Entry, secs []*report.Section)
	walk = func(entries []Entry, secs []*report.Section) {
		for i, e := range entries {
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			if e.Numbering != "" {
				sb.WriteString(e.Numbering + " ")
			}
			sb.WriteString(e.Title)
			s := secs[i]
			switch {
			case strings.TrimSpace(s.Content) != "":
				sb.WriteString("\n" + s.Content)
			case len(s.Notes) > 0:
				var notes []string
				for _, n := range s.Notes {
					notes = append(notes, n.Content)
				}
				sb.WriteString("\nNotes: " + strings.Join(notes, "\n"))
			default:
				sb.WriteString("\n" + PlaceholderText)
			}
			walk(e.Children, s.Subsections)
		}
	}
	walk(Outline(sections), sections)
	return sb.String()
}
