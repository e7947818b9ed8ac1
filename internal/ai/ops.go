package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mlevasseur/reportforge/internal/report"
)

// The drafting operations. Each one builds a prompt, runs the client
// once, and normalizes the answer. A failed call returns an error and
// nothing else — callers apply results to the tree only on success.

// QuestionsInput describes a section to generate questions for.
type QuestionsInput struct {
	Title        string
	Description  string
	Notes        string
	Content      string
	Instructions string
}

// RecommendationsInput describes a section to advise on.
type RecommendationsInput struct {
	Title        string
	Description  string
	Status       report.Status
	Notes        string
	Content      string
	Instructions string
}

// ContentInput describes a section to draft.
type ContentInput struct {
	Title          string
	Description    string
	Notes          string
	CompanyContext string
	ContextChunks  string
}

// TestConnection runs a trivial completion to validate the credentials.
func TestConnection(ctx context.Context, c Client) (string, error) {
	out, err := c.Generate(ctx, connectionTestSystem, connectionTestUser, GenerateOptions{Temperature: 0.1, MaxTokens: 32})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// GenerateQuestions returns guiding questions for a section.
func GenerateQuestions(ctx context.Context, c Client, in QuestionsInput) ([]string, error) {
	out, err := c.Generate(ctx, questionsSystemPrompt, buildQuestionsPrompt(in), GenerateOptions{Temperature: 0.4})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	return splitLines(out), nil
}

// GenerateRecommendations returns next-step advice for a section.
func GenerateRecommendations(ctx context.Context, c Client, in RecommendationsInput) ([]string, error) {
	out, err := c.Generate(ctx, recommendationsSystemPrompt, buildRecommendationsPrompt(in), GenerateOptions{Temperature: 0.4})
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}
	return splitLines(out), nil
}

// GenerateSectionContent drafts a section body from notes and context.
func GenerateSectionContent(ctx context.Context, c Client, in ContentInput) (string, error) {
	out, err := c.Generate(ctx, contentSystemPrompt, buildContentPrompt(in), GenerateOptions{Temperature: 0.4, MaxTokens: 6000})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ImproveText proofreads and tightens existing text, optionally folding
// in new notes.
func ImproveText(ctx context.Context, c Client, text, sectionContext, notes string) (string, error) {
	out, err := c.Generate(ctx, improveSystemPrompt, buildImprovePrompt(text, sectionContext, notes), GenerateOptions{Temperature: 0.4, MaxTokens: 6000})
	if err != nil {
		return "", fmt.Errorf("improve text: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// GenerateNotes produces note entries from a free-form author request.
func GenerateNotes(ctx context.Context, c Client, title, description, userPrompt, existingNotes string) ([]string, error) {
	out, err := c.Generate(ctx, notesSystemPrompt, buildNotesPrompt(title, description, userPrompt, existingNotes), GenerateOptions{Temperature: 0.5})
	if err != nil {
		return nil, fmt.Errorf("generate notes: %w", err)
	}
	return splitLines(out), nil
}

// CustomPrompt applies a free-form instruction to content.
func CustomPrompt(ctx context.Context, c Client, content, instruction, sectionTitle string) (string, error) {
	out, err := c.Generate(ctx, customPromptSystem, buildCustomPrompt(content, instruction, sectionTitle), GenerateOptions{Temperature: 0.4, MaxTokens: 6000})
	if err != nil {
		return "", fmt.Errorf("custom prompt: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// AdjustLength rewrites content toward a page/word target.
func AdjustLength(ctx context.Context, c Client, content, title string, targetPages float64, targetWords int) (string, error) {
	out, err := c.Generate(ctx, adjustLengthSystem, buildAdjustLengthPrompt(content, title, targetPages, targetWords), GenerateOptions{Temperature: 0.4, MaxTokens: 8000})
	if err != nil {
		return "", fmt.Errorf("adjust length: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// CoveredRequirement is one instruction matched against the report.
type CoveredRequirement struct {
	Requirement string `json:"requirement"`
	Coverage    string `json:"coverage"` // complete | partial | missing
	Comment     string `json:"comment"`
}

// MissingElement is an instruction the report does not address.
type MissingElement struct {
	Requirement string `json:"requirement"`
	Description string `json:"description"`
}

// ComplianceResult is the structured verdict of a compliance analysis.
type ComplianceResult struct {
	Score               int                  `json:"score"`
	CoveredRequirements []CoveredRequirement `json:"covered_requirements"`
	MissingElements     []MissingElement     `json:"missing_elements"`
	Recommendations     []string             `json:"recommendations"`
	Summary             string               `json:"summary"`
}

// AnalyzeCompliance checks the report against uploaded instructions.
// When the model answer cannot be parsed as JSON, the raw text is
// returned as the summary of a zero-score result rather than failing.
func AnalyzeCompliance(ctx context.Context, c Client, reportContent, instructions string) (ComplianceResult, error) {
	out, err := c.Generate(ctx, complianceSystemPrompt, buildCompliancePrompt(reportContent, instructions), GenerateOptions{Temperature: 0.2, MaxTokens: 6000})
	if err != nil {
		return ComplianceResult{}, fmt.Errorf("analyze compliance: %w", err)
	}

	var result ComplianceResult
	if raw := extractJSONObject(out); raw != "" {
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			return result, nil
		}
	}
	return ComplianceResult{Summary: strings.TrimSpace(out)}, nil
}

// GapRequirement describes one requirement in a gap analysis.
type GapRequirement struct {
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	OldDescription string `json:"old_description,omitempty"`
	NewDescription string `json:"new_description,omitempty"`
	Priority       string `json:"priority,omitempty"`
	Impact         string `json:"impact,omitempty"`
}

// GapResult compares two versions of a requirements document.
type GapResult struct {
	NewRequirements       []GapRequirement `json:"new_requirements"`
	RemovedRequirements   []GapRequirement `json:"removed_requirements"`
	ModifiedRequirements  []GapRequirement `json:"modified_requirements"`
	UnchangedRequirements []GapRequirement `json:"unchanged_requirements"`
	Summary               string           `json:"summary"`
}

// AnalyzeGap compares an old and a new requirements document.
func AnalyzeGap(ctx context.Context, c Client, oldContent, newContent string) (GapResult, error) {
	out, err := c.Generate(ctx, gapSystemPrompt, buildGapPrompt(oldContent, newContent), GenerateOptions{Temperature: 0.2, MaxTokens: 8000})
	if err != nil {
		return GapResult{}, fmt.Errorf("analyze gap: %w", err)
	}

	var result GapResult
	if raw := extractJSONObject(out); raw != "" {
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			return result, nil
		}
	}
	return GapResult{Summary: strings.TrimSpace(out)}, nil
}

// GrammarCorrection is one proofreading fix.
type GrammarCorrection struct {
	Original    string `json:"original"`
	Corrected   string `json:"corrected"`
	Explanation string `json:"explanation"`
}

// GrammarReview is the result of a whole-report proofread.
type GrammarReview struct {
	Corrections []GrammarCorrection `json:"corrections"`
	Summary     string              `json:"summary"`
}

// ReviewGrammar proofreads the assembled report text.
func ReviewGrammar(ctx context.Context, c Client, reportContent string) (GrammarReview, error) {
	out, err := c.Generate(ctx, grammarSystemPrompt, truncate(reportContent, 20000), GenerateOptions{Temperature: 0.2, MaxTokens: 6000})
	if err != nil {
		return GrammarReview{}, fmt.Errorf("review grammar: %w", err)
	}

	var result GrammarReview
	if raw := extractJSONObject(out); raw != "" {
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			return result, nil
		}
	}
	return GrammarReview{Summary: strings.TrimSpace(out)}, nil
}

// PlanSection is one node of an AI-proposed outline.
type PlanSection struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Required    bool          `json:"required"`
	Children    []PlanSection `json:"children"`
}

// GeneratePlanStructure asks the model for a complete outline. Unlike
// the analyses above, an unparseable answer is an error here: a report
// cannot be instantiated from a degraded result.
func GeneratePlanStructure(ctx context.Context, c Client, companyName, companySector, description string) ([]PlanSection, error) {
	out, err := c.Generate(ctx, planSystemPrompt, buildPlanPrompt(companyName, companySector, description), GenerateOptions{Temperature: 0.2, MaxTokens: 8000})
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	raw := extractJSONArray(out)
	if raw == "" {
		return nil, fmt.Errorf("generate plan: no JSON array in model answer")
	}
	var sections []PlanSection
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("generate plan: parse answer: %w", err)
	}
	return sections, nil
}

// BuildPlan converts an AI-proposed outline into a report plan, minting
// ids and sibling order.
func BuildPlan(sections []PlanSection) report.Plan {
	return report.Plan{
		TotalMinPages: 10,
		TotalMaxPages: 20,
		Sections:      buildPlanSections(sections, ""),
	}
}

func buildPlanSections(specs []PlanSection, parentID string) []*report.Section {
	out := make([]*report.Section, 0, len(specs))
	for i, spec := range specs {
		s := &report.Section{
			ID:          newSectionID(),
			Title:       spec.Title,
			Description: spec.Description,
			Required:    spec.Required,
			Order:       i + 1,
			ParentID:    parentID,
			Status:      report.StatusNotStarted,
		}
		s.Subsections = buildPlanSections(spec.Children, s.ID)
		out = append(out, s)
	}
	return out
}
