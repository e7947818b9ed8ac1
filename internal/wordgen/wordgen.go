// Package wordgen renders a report as a Word document: a cover page
// built from the report metadata, a table of contents, then the
// numbered body. Sections without content get the explicit placeholder
// marker so the exported document shows what remains to write.
package wordgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/mlevasseur/reportforge/internal/assembly"
	"github.com/mlevasseur/reportforge/internal/report"
)

// Font sizes in half-points, as OOXML wants them.
const (
	sizeTitle    = "48"
	sizeSubtitle = "28"
	sizeHeading1 = "32"
	sizeHeading2 = "26"
	sizeHeading3 = "24"
)

// Generate writes the report as a .docx to w.
func Generate(w io.Writer, r *report.Report) error {
	if r == nil {
		return fmt.Errorf("no report to export")
	}

	doc := docx.New().WithDefaultTheme()

	writeCoverPage(doc, r)
	doc.AddParagraph().AddPageBreaks()

	outline := assembly.Outline(r.Plan.Sections)
	writeTableOfContents(doc, outline)
	doc.AddParagraph().AddPageBreaks()

	writeBody(doc, outline)

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func writeCoverPage(doc *docx.Docx, r *report.Report) {
	title := doc.AddParagraph().Justification("center")
	title.AddText("Internship Report").Size(sizeTitle).Bold()

	if r.Semester != "" {
		p := doc.AddParagraph().Justification("center")
		p.AddText(r.Semester).Size(sizeSubtitle)
	}

	doc.AddParagraph()

	name := strings.TrimSpace(r.StudentFirstname + " " + r.StudentName)
	if name != "" {
		p := doc.AddParagraph().Justification("center")
		p.AddText(name).Size(sizeSubtitle).Bold()
	}

	if r.CompanyName != "" {
		company := r.CompanyName
		if r.CompanyLocation != "" {
			company += " — " + r.CompanyLocation
		}
		p := doc.AddParagraph().Justification("center")
		p.AddText(company).Size(sizeSubtitle)
	}

	if r.StartDate != "" || r.EndDate != "" {
		p := doc.AddParagraph().Justification("center")
		p.AddText(strings.TrimSpace(r.StartDate + " – " + r.EndDate))
	}

	if r.TutorName != "" {
		p := doc.AddParagraph().Justification("center")
		p.AddText("Tutor: " + r.TutorName)
	}
}

func writeTableOfContents(doc *docx.Docx, outline []assembly.Entry) {
	h := doc.AddParagraph()
	h.AddText("Table of Contents").Size(sizeHeading1).Bold()

	for _, e := range assembly.Flatten(outline) {
		if e.ID == report.CoverSectionID {
			continue
		}
		line := e.Title
		if e.Numbering != "" {
			line = e.Numbering + " " + line
		}
		p := doc.AddParagraph()
		p.AddText(strings.Repeat("    ", e.Level-1) + line)
	}
}

func writeBody(doc *docx.Docx, outline []assembly.Entry) {
	first := true
	var walk func(entries []assembly.Entry)
	walk = func(entries []assembly.Entry) {
		for _, e := range entries {
			if e.ID == report.CoverSectionID {
				continue
			}
			if e.Level == 1 && !first {
				doc.AddParagraph().AddPageBreaks()
			}
			first = false
			writeHeading(doc, e)
			writeContent(doc, e)
			walk(e.Children)
		}
	}
	walk(outline)
}

func writeHeading(doc *docx.Docx, e assembly.Entry) {
	title := e.Title
	if e.Numbering != "" {
		title = e.Numbering + " " + title
	}
	p := doc.AddParagraph()
	p.AddText(title).Size(headingSize(e.Level)).Bold()
}

func writeContent(doc *docx.Docx, e assembly.Entry) {
	if e.Placeholder {
		p := doc.AddParagraph()
		p.AddText(assembly.PlaceholderText).Italic()
		return
	}
	for _, para := range strings.Split(e.Content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		p := doc.AddParagraph().Justification("both")
		p.AddText(para)
	}
}

func headingSize(level int) string {
	switch level {
	case 1:
		return sizeHeading1
	case 2:
		return sizeHeading2
	default:
		return sizeHeading3
	}
}
