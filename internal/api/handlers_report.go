package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlevasseur/reportforge/internal/anonymizer"
	"github.com/mlevasseur/reportforge/internal/assembly"
	"github.com/mlevasseur/reportforge/internal/report"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// requireReport returns the current report or writes a 404.
func (s *Server) requireReport(w http.ResponseWriter) *report.Report {
	r := s.store.Current()
	if r == nil {
		jsonError(w, "no report created yet", http.StatusNotFound)
	}
	return r
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var meta report.Metadata
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		jsonError(w, "invalid metadata: "+err.Error(), http.StatusBadRequest)
		return
	}

	rep := report.New(meta)
	s.store.Replace(rep)

	// Feed the anonymizer so uploaded documents mask these names.
	s.anon.RegisterName(meta.StudentName, anonymizer.EntityPerson)
	s.anon.RegisterName(meta.StudentFirstname+" "+meta.StudentName, anonymizer.EntityPerson)
	s.anon.RegisterName(meta.TutorName, anonymizer.EntityPerson)
	s.anon.RegisterName(meta.CompanyName, anonymizer.EntityCompany)

	writeJSONStatus(w, http.StatusCreated, rep)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep := s.requireReport(w)
	if rep == nil {
		return
	}
	writeJSON(w, rep)
}

func (s *Server) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var meta report.Metadata
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		jsonError(w, "invalid metadata: "+err.Error(), http.StatusBadRequest)
		return
	}
	if s.requireReport(w) == nil {
		return
	}

	s.store.Mutate(func(rep *report.Report) bool {
		rep.StudentName = meta.StudentName
		rep.StudentFirstname = meta.StudentFirstname
		rep.Semester = meta.Semester
		rep.CompanyName = meta.CompanyName
		rep.CompanyLocation = meta.CompanyLocation
		rep.StartDate = meta.StartDate
		rep.EndDate = meta.EndDate
		rep.TutorName = meta.TutorName
		return true
	})
	writeJSON(w, s.store.Current())
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	rep := s.requireReport(w)
	if rep == nil {
		return
	}
	writeJSON(w, report.CalculateProgress(rep.Plan.Sections))
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	rep := s.requireReport(w)
	if rep == nil {
		return
	}
	writeJSON(w, assembly.Outline(rep.Plan.Sections))
}

func (s *Server) handleReportText(w http.ResponseWriter, r *http.Request) {
	rep := s.requireReport(w)
	if rep == nil {
		return
	}
	writeJSON(w, map[string]string{"text": assembly.PlainText(rep.Plan.Sections)})
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	rep := s.requireReport(w)
	if rep == nil {
		return
	}
	sec := report.Find(rep.Plan.Sections, chi.URLParam(r, "sectionID"))
	if sec == nil {
		jsonError(w, "section not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sec)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	if s.requireReport(w) == nil {
		return
	}
	id := chi.URLParam(r, "sectionID")
	removed := false
	s.store.Mutate(func(rep *report.Report) bool {
		removed = report.RemoveSection(&rep.Plan.Sections, id)
		return removed
	})
	if !removed {
		jsonError(w, "section not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]bool{"removed": true})
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status report.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !report.ValidStatus(body.Status) {
		jsonError(w, "unknown status: "+string(body.Status), http.StatusBadRequest)
		return
	}
	if s.requireReport(w) == nil {
		return
	}

	id := chi.URLParam(r, "sectionID")
	updated := false
	s.store.Mutate(func(rep *report.Report) bool {
		updated = report.SetStatus(rep.Plan.Sections, id, body.Status)
		return updated
	})
	if !updated {
		jsonError(w, "section not found", http.StatusNotFound)
		return
	}
	writeJSON(w, report.CalculateProgress(s.store.Current().Plan.Sections))
}

func (s *Server) handleSetContent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if s.requireReport(w) == nil {
		return
	}

	id := chi.URLParam(r, "sectionID")
	updated := false
	s.store.Mutate(func(rep *report.Report) bool {
		updated = report.SetContent(rep.Plan.Sections, id, body.Content)
		return updated
	})
	if !updated {
		jsonError(w, "section not found", http.StatusNotFound)
		return
	}
	writeJSON(w, report.Find(s.store.Current().Plan.Sections, id))
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if s.requireReport(w) == nil {
		return
	}

	id := chi.URLParam(r, "sectionID")
	var note report.Note
	added := false
	s.store.Mutate(func(rep *report.Report) bool {
		note, added = report.AddNote(rep.Plan.Sections, id, body.Content)
		return added
	})
	if !added {
		jsonError(w, "section not found", http.StatusNotFound)
		return
	}
	writeJSONStatus(w, http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if s.requireReport(w) == nil {
		return
	}

	id := chi.URLParam(r, "sectionID")
	noteID := chi.URLParam(r, "noteID")
	updated := false
	s.store.Mutate(func(rep *report.Report) bool {
		updated = report.UpdateNote(rep.Plan.Sections, id, noteID, body.Content)
		return updated
	})
	if !updated {
		jsonError(w, "note not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]bool{"updated": true})
}

func (s *Server) handleRemoveNote(w http.ResponseWriter, r *http.Request) {
	if s.requireReport(w) == nil {
		return
	}
	id := chi.URLParam(r, "sectionID")
	noteID := chi.URLParam(r, "noteID")
	removed := false
	s.store.Mutate(func(rep *report.Report) bool {
		removed = report.RemoveNote(rep.Plan.Sections, id, noteID)
		return removed
	})
	if !removed {
		jsonError(w, "note not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]bool{"removed": true})
}

func (s *Server) handleDefaultPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, report.DefaultPlan())
}
