package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mlevasseur/reportforge/internal/ai"
	"github.com/mlevasseur/reportforge/internal/assembly"
	"github.com/mlevasseur/reportforge/internal/contextindex"
	"github.com/mlevasseur/reportforge/internal/report"
)

// aiClient returns the configured LLM client. The client is cached so
// latency stats accumulate across calls; it is rebuilt when the config
// changes.
func (s *Server) aiClient() (*ai.ChatClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	if s.aiCfg == nil {
		return nil, fmt.Errorf("no AI provider configured")
	}
	c, err := ai.FromConfig(*s.aiCfg)
	if err != nil {
		return nil, err
	}
	s.client = c
	return c, nil
}

func (s *Server) handleSetAIConfig(w http.ResponseWriter, r *http.Request) {
	var cfg report.AIProviderConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		jsonError(w, "invalid config: "+err.Error(), http.StatusBadRequest)
		return
	}
	c, err := ai.FromConfig(cfg)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if s.client != nil {
		s.client.Close()
	}
	s.aiCfg = &cfg
	s.client = c
	s.mu.Unlock()

	writeJSON(w, map[string]string{
		"provider": c.Provider(),
		"model":    c.Model(),
	})
}

func (s *Server) handleTestAI(w http.ResponseWriter, r *http.Request) {
	c, err := s.aiClient()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	answer, err := ai.TestConnection(r.Context(), c)
	if err != nil {
		jsonError(w, "connection test failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{
		"provider": c.Provider(),
		"model":    c.Model(),
		"answer":   answer,
	})
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c := s.client
	s.mu.Unlock()
	if c == nil || c.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{
		"provider": c.Provider(),
		"model":    c.Model(),
		"stats":    c.Stats.Snapshot(),
	})
}

// sectionForAI resolves the target section of a drafting call.
func (s *Server) sectionForAI(w http.ResponseWriter, r *http.Request) (*report.Section, *ai.ChatClient, bool) {
	rep := s.requireReport(w)
	if rep == nil {
		return nil, nil, false
	}
	sec := report.Find(rep.Plan.Sections, chi.URLParam(r, "sectionID"))
	if sec == nil {
		jsonError(w, "section not found", http.StatusNotFound)
		return nil, nil, false
	}
	c, err := s.aiClient()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	return sec, c, true
}

func notesText(sec *report.Section) string {
	var parts []string
	for _, n := range sec.Notes {
		parts = append(parts, n.Content)
	}
	return strings.Join(parts, "\n")
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	sec, c, ok := s.sectionForAI(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	instructions := s.instructions
	s.mu.Unlock()

	questions, err := ai.GenerateQuestions(r.Context(), c, ai.QuestionsInput{
		Title:        sec.Title,
		Description:  sec.Description,
		Notes:        notesText(sec),
		Content:      sec.Content,
		Instructions: instructions,
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.store.Mutate(func(rep *report.Report) bool {
		return report.SetQuestions(rep.Plan.Sections, sec.ID, questions)
	})
	writeJSON(w, map[string]any{"questions": questions})
}

func (s *Server) handleGenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	sec, c, ok := s.sectionForAI(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	instructions := s.instructions
	s.mu.Unlock()

	recs, err := ai.GenerateRecommendations(r.Context(), c, ai.RecommendationsInput{
		Title:        sec.Title,
		Description:  sec.Description,
		Status:       sec.Status,
		Notes:        notesText(sec),
		Content:      sec.Content,
		Instructions: instructions,
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.store.Mutate(func(rep *report.Report) bool {
		return report.SetRecommendations(rep.Plan.Sections, sec.ID, recs)
	})
	writeJSON(w, map[string]any{"recommendations": recs})
}

func (s *Server) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	sec, c, ok := s.sectionForAI(w, r)
	if !ok {
		return
	}
	rep := s.store.Current()

	// Pull the most relevant ingested chunks into the prompt.
	var contextChunks string
	if s.index != nil {
		matches := s.index.Search(sec.Title+" "+sec.Description, 5)
		contextChunks = contextindex.ContextText(matches)
	}

	content, err := ai.GenerateSectionContent(r.Context(), c, ai.ContentInput{
		Title:          sec.Title,
		Description:    sec.Description,
		Notes:          notesText(sec),
		CompanyContext: rep.CompanyName + " — " + rep.CompanyLocation,
		ContextChunks:  contextChunks,
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.store.Mutate(func(rep *report.Report) bool {
		if !report.SetContent(rep.Plan.Sections, sec.ID, content) {
			return false
		}
		report.SetStatus(rep.Plan.Sections, sec.ID, report.StatusInProgress)
		return true
	})
	writeJSON(w, map[string]string{"content": content})
}

func (s *Server) handleImproveContent(w http.ResponseWriter, r *http.Request) {
	sec, c, ok := s.sectionForAI(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(sec.Content) == "" {
		jsonError(w, "section has no content to improve", http.StatusBadRequest)
		return
	}

	improved, err := ai.ImproveText(r.Context(), c, sec.Content, sec.Title+": "+sec.Description, notesText(sec))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.store.Mutate(func(rep *report.Report) bool {
		return report.SetContent(rep.Plan.Sections, sec.ID, improved)
	})
	writeJSON(w, map[string]string{"content": improved})
}

func (s *Server) handleGenerateNotes(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sec, c, ok := s.sectionForAI(w, r)
	if !ok {
		return
	}

	notes, err := ai.GenerateNotes(r.Context(), c, sec.Title, sec.Description, body.Prompt, notesText(sec))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	var added []report.Note
	s.store.Mutate(func(rep *report.Report) bool {
		for _, n := range notes {
			if note, ok := report.AddNote(rep.Plan.Sections, sec.ID, n); ok {
				added = append(added, note)
			}
		}
		return len(added) > 0
	})
	writeJSON(w, map[string]any{"notes": added})
}

func (s *Server) handleCustomPrompt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Instruction string `json:"instruction"`
		Apply       bool   `json:"apply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Instruction) == "" {
		jsonError(w, "instruction is required", http.StatusBadRequest)
		return
	}
	sec, c, ok := s.sectionForAI(w, r)
	if !ok {
		return
	}

	out, err := ai.CustomPrompt(r.Context(), c, sec.Content, body.Instruction, sec.Title)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	if body.Apply {
		s.store.Mutate(func(rep *report.Report) bool {
			return report.SetContent(rep.Plan.Sections, sec.ID, out)
		})
	}
	writeJSON(w, map[string]any{"content": out, "applied": body.Apply})
}

func (s *Server) handleAdjustLength(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TargetPages float64 `json:"target_pages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sec, c, ok := s.sectionForAI(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(sec.Content) == "" {
		jsonError(w, "section has no content to adjust", http.StatusBadRequest)
		return
	}

	target := body.TargetPages
	if target <= 0 {
		target = sec.MaxPages
	}
	if target <= 0 {
		jsonError(w, "no page target for this section", http.StatusBadRequest)
		return
	}
	// Rough convention: 400 words per page.
	words := int(target * 400)

	adjusted, err := ai.AdjustLength(r.Context(), c, sec.Content, sec.Title, target, words)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.store.Mutate(func(rep *report.Report) bool {
		return report.SetContent(rep.Plan.Sections, sec.ID, adjusted)
	})
	writeJSON(w, map[string]string{"content": adjusted})
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	rep := s.requireReport(w)
	if rep == nil {
		return
	}
	s.mu.Lock()
	instructions := s.instructions
	s.mu.Unlock()
	if strings.TrimSpace(instructions) == "" {
		jsonError(w, "no instructions uploaded", http.StatusBadRequest)
		return
	}
	c, err := s.aiClient()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := ai.AnalyzeCompliance(r.Context(), c, assembly.PlainText(rep.Plan.Sections), instructions)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleGap(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OldContent string `json:"old_content"`
		NewContent string `json:"new_content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.OldContent == "" || body.NewContent == "" {
		jsonError(w, "old_content and new_content are required", http.StatusBadRequest)
		return
	}
	c, err := s.aiClient()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := ai.AnalyzeGap(r.Context(), c, body.OldContent, body.NewContent)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	rep := s.requireReport(w)
	if rep == nil {
		return
	}
	c, err := s.aiClient()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := ai.ReviewGrammar(r.Context(), c, assembly.PlainText(rep.Plan.Sections))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanySector string `json:"company_sector"`
		Description   string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	rep := s.requireReport(w)
	if rep == nil {
		return
	}
	c, err := s.aiClient()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sections, err := ai.GeneratePlanStructure(r.Context(), c, rep.CompanyName, body.CompanySector, body.Description)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	plan := ai.BuildPlan(sections)
	s.store.Mutate(func(rep *report.Report) bool {
		rep.Plan = plan
		return true
	})
	writeJSON(w, plan)
}

func (s *Server) handleSetInstructions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Instructions string `json:"instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.instructions = body.Instructions
	s.mu.Unlock()
	writeJSON(w, map[string]int{"length": len(body.Instructions)})
}

func (s *Server) handleGetInstructions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	instructions := s.instructions
	s.mu.Unlock()
	writeJSON(w, map[string]string{"instructions": instructions})
}
