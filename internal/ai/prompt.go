package ai

import (
	"fmt"
	"strings"
)

// Prompt builders for the drafting operations. Prompts that expect a
// JSON answer spell the exact shape out and forbid surrounding prose;
// the parsers in ops.go still tolerate fenced or mixed output.

const questionsSystemPrompt = `You are an assistant helping a student write a structured internship report.
Given a section of the report, ask the questions the student should answer to write that section well.
Ask concrete, specific questions grounded in the section description and the student's notes.
Return 5 to 8 questions, one per line, no numbering, no other text.`

func buildQuestionsPrompt(in QuestionsInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Section: %s\n", in.Title)
	if in.Description != "" {
		fmt.Fprintf(&sb, "Expected content: %s\n", in.Description)
	}
	if in.Notes != "" {
		fmt.Fprintf(&sb, "\nStudent notes so far:\n%s\n", truncate(in.Notes, 4000))
	}
	if in.Content != "" {
		fmt.Fprintf(&sb, "\nDraft content so far:\n%s\n", truncate(in.Content, 4000))
	}
	if in.Instructions != "" {
		fmt.Fprintf(&sb, "\nSchool instructions to respect:\n%s\n", truncate(in.Instructions, 3000))
	}
	sb.WriteString("\nWhat questions should the student answer to complete this section?")
	return sb.String()
}

const recommendationsSystemPrompt = `You are an assistant reviewing a section of a structured report.
Give actionable recommendations to move the section forward, adapted to its current status and content.
Return 3 to 6 recommendations, one per line, no numbering, no other text.`

func buildRecommendationsPrompt(in RecommendationsInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Section: %s\nStatus: %s\n", in.Title, in.Status)
	if in.Description != "" {
		fmt.Fprintf(&sb, "Expected content: %s\n", in.Description)
	}
	if in.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes:\n%s\n", truncate(in.Notes, 4000))
	}
	if in.Content != "" {
		fmt.Fprintf(&sb, "\nCurrent content:\n%s\n", truncate(in.Content, 6000))
	}
	if in.Instructions != "" {
		fmt.Fprintf(&sb, "\nSchool instructions:\n%s\n", truncate(in.Instructions, 3000))
	}
	sb.WriteString("\nWhat should the author do next on this section?")
	return sb.String()
}

const contentSystemPrompt = `You are a professional writer drafting a section of a structured report.
Write clear, factual, well-organized prose based on the author's notes.
Plain text only, structured in paragraphs. No Markdown formatting, no headings.`

func buildContentPrompt(in ContentInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Section: %s\n", in.Title)
	if in.Description != "" {
		fmt.Fprintf(&sb, "Expected content: %s\n", in.Description)
	}
	if in.CompanyContext != "" {
		fmt.Fprintf(&sb, "\nContext:\n%s\n", in.CompanyContext)
	}
	if in.ContextChunks != "" {
		fmt.Fprintf(&sb, "\nRelevant excerpts from reference documents:\n%s\n", truncate(in.ContextChunks, 3000))
	}
	if in.Notes != "" {
		fmt.Fprintf(&sb, "\nAuthor notes:\n%s\n", truncate(in.Notes, 5000))
	}
	sb.WriteString("\nWrite the full content for this section.")
	return sb.String()
}

const improveSystemPrompt = `You are a professional editor.
Improve the text you are given: fix grammar and spelling, tighten the style, keep all existing information.
If additional notes are provided, integrate the new information without duplicating what is already there.
Plain text only, no Markdown. Return only the improved text.`

func buildImprovePrompt(text, sectionContext, notes string) string {
	var sb strings.Builder
	if sectionContext != "" {
		fmt.Fprintf(&sb, "Section: %s\n\n", sectionContext)
	}
	if notes != "" {
		fmt.Fprintf(&sb, "New notes to integrate:\n%s\n\n", truncate(notes, 4000))
	}
	fmt.Fprintf(&sb, "Text to improve:\n%s", text)
	return sb.String()
}

const notesSystemPrompt = `You are an assistant helping an author take notes for a report section.
From the author's request, produce short factual note entries they can refine later.
Return one note per line, no numbering, no other text.`

func buildNotesPrompt(title, description, userPrompt, existingNotes string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Section: %s\n", title)
	if description != "" {
		fmt.Fprintf(&sb, "Expected content: %s\n", description)
	}
	if existingNotes != "" {
		fmt.Fprintf(&sb, "\nExisting notes:\n%s\n", truncate(existingNotes, 4000))
	}
	fmt.Fprintf(&sb, "\nAuthor request: %s", userPrompt)
	return sb.String()
}

const customPromptSystem = `You are an expert writing assistant for structured reports.
Apply the user's instruction to the content exactly as asked.
Plain text only, no Markdown. Return only the transformed text.`

func buildCustomPrompt(content, instruction, sectionTitle string) string {
	return fmt.Sprintf("Section: %s\n\nInstruction: %s\n\nContent:\n%s\n\nApply the instruction to the content.",
		sectionTitle, instruction, content)
}

const adjustLengthSystem = `You are an editor resizing a report section.
Rewrite the content to the requested length while keeping every important point.
Plain text only, no Markdown. Return only the rewritten text.`

func buildAdjustLengthPrompt(content, title string, targetPages float64, targetWords int) string {
	return fmt.Sprintf("Section: %s\nTarget length: about %.1f pages (%d words).\n\nContent:\n%s",
		title, targetPages, targetWords, content)
}

const complianceSystemPrompt = `You are an expert reviewer checking a report against a set of instructions.
Evaluate how well the report covers each instruction.

Answer with EXACTLY this JSON shape (no markdown):
{
  "score": 0-100,
  "covered_requirements": [{"requirement": "...", "coverage": "complete|partial|missing", "comment": "..."}],
  "missing_elements": [{"requirement": "...", "description": "what is missing"}],
  "recommendations": ["..."],
  "summary": "..."
}`

func buildCompliancePrompt(reportContent, instructions string) string {
	return fmt.Sprintf("INSTRUCTIONS:\n%s\n\nREPORT CONTENT:\n%s\n\nAnalyze how completely the report follows the instructions.",
		truncate(instructions, 10000), truncate(reportContent, 10000))
}

const gapSystemPrompt = `You are an expert comparing two versions of a requirements document.
Identify new, removed, modified and unchanged requirements.

Answer with EXACTLY this JSON shape (no markdown):
{
  "new_requirements": [{"title": "...", "description": "...", "priority": "high|medium|low"}],
  "removed_requirements": [{"title": "...", "description": "..."}],
  "modified_requirements": [{"title": "...", "old_description": "...", "new_description": "...", "impact": "..."}],
  "unchanged_requirements": [{"title": "...", "description": "..."}],
  "summary": "..."
}`

func buildGapPrompt(oldContent, newContent string) string {
	return fmt.Sprintf("PREVIOUS VERSION:\n%s\n\nNEW VERSION:\n%s\n\nAnalyze the differences between the two versions.",
		truncate(oldContent, 15000), truncate(newContent, 15000))
}

const grammarSystemPrompt = `You are a proofreader. Review the text for grammar, spelling and conjugation errors.

Answer with EXACTLY this JSON shape (no markdown):
{
  "corrections": [{"original": "...", "corrected": "...", "explanation": "..."}],
  "summary": "..."
}`

const planSystemPrompt = `You are an expert in structured report writing.
Design the complete outline of a report for the described internship or engagement.

Answer with EXACTLY this JSON array (no markdown):
[
  {
    "title": "Chapter title",
    "description": "What this chapter should contain",
    "required": true,
    "children": [
      {"title": "...", "description": "...", "required": true, "children": []}
    ]
  }
]`

func buildPlanPrompt(companyName, companySector, description string) string {
	return fmt.Sprintf("Company: %s\nSector: %s\n\nEngagement description:\n%s\n\nGenerate the complete outline.",
		companyName, companySector, truncate(description, 8000))
}

const connectionTestSystem = "You are a helpful assistant."
const connectionTestUser = "Reply with exactly: Connection successful"
