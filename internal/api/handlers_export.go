package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlevasseur/reportforge/internal/report"
	"github.com/mlevasseur/reportforge/internal/wordgen"
)

// exportBlob serializes the full session: report, AI config,
// instructions.
func (s *Server) exportBlob() ([]byte, error) {
	s.mu.Lock()
	aiCfg := s.aiCfg
	instructions := s.instructions
	s.mu.Unlock()
	return report.ExportBlob(s.store.Current(), aiCfg, instructions)
}

func (s *Server) handleExportBlob(w http.ResponseWriter, r *http.Request) {
	if s.requireReport(w) == nil {
		return
	}
	data, err := s.exportBlob()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="report-export.json"`)
	w.Write(data)
}

func (s *Server) handleImportBlob(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	blob, err := report.ImportBlob(data)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.store.Replace(blob.Report)
	s.mu.Lock()
	if blob.AIConfig != nil {
		s.aiCfg = blob.AIConfig
		if s.client != nil {
			s.client.Close()
			s.client = nil
		}
	}
	s.instructions = blob.Instructions
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"imported":  true,
		"report_id": blob.Report.ID,
	})
}

func (s *Server) handleExportDocx(w http.ResponseWriter, r *http.Request) {
	rep := s.requireReport(w)
	if rep == nil {
		return
	}

	if r.URL.Query().Get("enhance") == "true" {
		c, err := s.aiClient()
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		enhanced, err := wordgen.Enhance(r.Context(), c, s.log, rep)
		if err != nil {
			jsonError(w, "enhancement failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		rep = enhanced
	}

	var buf bytes.Buffer
	if err := wordgen.Generate(&buf, rep); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="report.docx"`)
	w.Write(buf.Bytes())
}

// requireArchive writes an error when no remote archive is configured.
func (s *Server) requireArchive(w http.ResponseWriter) bool {
	if s.archive == nil {
		jsonError(w, "no remote archive configured", http.StatusNotImplemented)
		return false
	}
	return true
}

func (s *Server) handleArchivePut(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) || s.requireReport(w) == nil {
		return
	}
	data, err := s.exportBlob()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	projectID := chi.URLParam(r, "projectID")
	if err := s.archive.Put(r.Context(), projectID, data); err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{"archived": projectID})
}

func (s *Server) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) {
		return
	}
	projectID := chi.URLParam(r, "projectID")
	rec, err := s.archive.Get(r.Context(), projectID)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	if rec == nil {
		jsonError(w, "no archived report for project", http.StatusNotFound)
		return
	}

	blob, err := report.ImportBlob(rec.Blob)
	if err != nil {
		jsonError(w, "archived blob is invalid: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	restore := r.URL.Query().Get("restore") == "true"
	if restore {
		s.store.Replace(blob.Report)
		s.mu.Lock()
		if blob.AIConfig != nil {
			s.aiCfg = blob.AIConfig
			if s.client != nil {
				s.client.Close()
				s.client = nil
			}
		}
		s.instructions = blob.Instructions
		s.mu.Unlock()
	}

	writeJSON(w, map[string]any{
		"project_id": projectID,
		"restored":   restore,
		"blob":       json.RawMessage(rec.Blob),
	})
}

func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) {
		return
	}
	entries, err := s.archive.List(r.Context(), 100)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]any{"projects": entries})
}

func (s *Server) handleArchiveDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) {
		return
	}
	projectID := chi.URLParam(r, "projectID")
	if err := s.archive.Delete(r.Context(), projectID); err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{"deleted": projectID})
}
