package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mlevasseur/reportforge/internal/anonymizer"
	"github.com/mlevasseur/reportforge/internal/doctree"
	"github.com/mlevasseur/reportforge/internal/parser"
)

// handleUploadDocument accepts a reference document and queues it for
// ingestion. The response carries the poll URL for progress tracking.
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	job, err := s.orchestrator.Submit(filename, data)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	snap := job.Snapshot()
	writeJSONStatus(w, http.StatusAccepted, map[string]any{
		"item_id":  snap.ItemID,
		"filename": snap.Filename,
		"step":     snap.Step,
		"progress": snap.Progress,
		"poll_url": fmt.Sprintf("/api/documents/%s/status", snap.ItemID),
	})
}

// readUpload extracts and validates the multipart file field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}
	return data, filename, true
}

func (s *Server) handleDocumentStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "docID"))
	if job == nil {
		jsonError(w, "unknown document", http.StatusNotFound)
		return
	}
	writeJSON(w, job.Snapshot())
}

// handleDocumentStatuses returns progress for a comma-separated set of
// ids, the shape the frontend polls until every entry is terminal.
func (s *Server) handleDocumentStatuses(w http.ResponseWriter, r *http.Request) {
	idsParam := r.URL.Query().Get("ids")
	if idsParam == "" {
		jsonError(w, "ids query parameter is required", http.StatusBadRequest)
		return
	}
	var ids []string
	for _, id := range strings.Split(idsParam, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	statuses := s.orchestrator.Statuses(ids)
	done := true
	for _, st := range statuses {
		if !st.Terminal() {
			done = false
			break
		}
	}
	writeJSON(w, map[string]any{
		"statuses": statuses,
		"done":     done,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"documents": s.orchestrator.Documents().List()})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.orchestrator.RemoveDocument(docID) {
		jsonError(w, "unknown document", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]bool{"removed": true})
}

// handleExtractText parses an upload synchronously and returns the
// anonymized plain text, without indexing it. Used to load the
// instructions document.
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parse failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	text := s.anon.Anonymize(doctree.FlattenText(tree))
	writeJSON(w, map[string]any{
		"filename": filename,
		"text":     text,
	})
}

func (s *Server) handleAnonymizerMappings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"mappings": s.anon.Mappings()})
}

func (s *Server) handleRegisterName(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string                `json:"name"`
		Type anonymizer.EntityType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	typ := body.Type
	if typ == "" {
		typ = anonymizer.EntityPerson
	}
	s.anon.RegisterName(body.Name, typ)
	writeJSON(w, map[string]bool{"registered": true})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
