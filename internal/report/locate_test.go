package report

import (
	"encoding/json"
	"testing"
)

func sampleTree() []*Section {
	return []*Section{
		{ID: "intro", Title: "Introduction", Required: true, Order: 1, Subsections: []*Section{
			{ID: "intro_context", Title: "Context", Required: true, Order: 1, ParentID: "intro"},
			{ID: "intro_plan", Title: "Plan", Required: true, Order: 2, ParentID: "intro"},
		}},
		{ID: "body", Title: "Body", Required: true, Order: 2, Subsections: []*Section{
			{ID: "body_deep", Title: "Deep", Required: true, Order: 1, ParentID: "body", Subsections: []*Section{
				{ID: "body_deeper", Title: "Deeper", Required: true, Order: 1, ParentID: "body_deep"},
			}},
		}},
	}
}

func TestFind_NestedSection(t *testing.T) {
	tree := sampleTree()

	s := Find(tree, "body_deeper")
	if s == nil {
		t.Fatal("expected to find body_deeper")
	}
	if s.Title != "Deeper" {
		t.Errorf("expected title Deeper, got %q", s.Title)
	}
}

func TestFind_MissingID(t *testing.T) {
	if s := Find(sampleTree(), "missing-id"); s != nil {
		t.Errorf("expected nil for missing id, got %+v", s)
	}
}

func TestFind_DuplicateIDsFirstMatchWins(t *testing.T) {
	// Duplicate ids are unspecified input; the locator visits depth-first
	// in stored order and returns the first match.
	tree := []*Section{
		{ID: "a", Title: "first", Subsections: []*Section{
			{ID: "dup", Title: "nested"},
		}},
		{ID: "dup", Title: "top-level"},
	}

	s := Find(tree, "dup")
	if s == nil || s.Title != "nested" {
		t.Fatalf("expected depth-first first match (nested), got %+v", s)
	}
}

func TestSetStatus_MissingIDLeavesTreeUnchanged(t *testing.T) {
	tree := sampleTree()
	before, err := json.Marshal(tree)
	if err != nil {
		t.Fatal(err)
	}

	if Find(tree, "missing-id") != nil {
		t.Fatal("precondition failed: missing-id should not exist")
	}
	if SetStatus(tree, "missing-id", StatusCompleted) {
		t.Fatal("expected no-op for missing id")
	}

	after, err := json.Marshal(tree)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("tree changed after no-op mutation")
	}
}

func TestSetContent_DoesNotTouchOtherFields(t *testing.T) {
	tree := sampleTree()
	target := Find(tree, "intro_context")
	target.Status = StatusInProgress
	target.Notes = []Note{{ID: "n1", Content: "keep me"}}

	if !SetContent(tree, "intro_context", "new body text") {
		t.Fatal("expected content update to succeed")
	}

	if target.Content != "new body text" {
		t.Errorf("content not updated: %q", target.Content)
	}
	if target.Status != StatusInProgress {
		t.Errorf("status changed by content update: %s", target.Status)
	}
	if len(target.Notes) != 1 || target.Notes[0].Content != "keep me" {
		t.Errorf("notes changed by content update: %+v", target.Notes)
	}
	if other := Find(tree, "intro_plan"); other.Content != "" {
		t.Errorf("sibling content changed: %q", other.Content)
	}
}

func TestNotes_AddUpdateRemove(t *testing.T) {
	tree := sampleTree()

	note, ok := AddNote(tree, "body_deep", "first observation")
	if !ok {
		t.Fatal("expected note to be added")
	}
	if note.ID == "" || note.CreatedAt == "" {
		t.Errorf("note missing id or timestamp: %+v", note)
	}

	if !UpdateNote(tree, "body_deep", note.ID, "revised") {
		t.Fatal("expected note update to succeed")
	}
	s := Find(tree, "body_deep")
	if s.Notes[0].Content != "revised" {
		t.Errorf("note content not updated: %q", s.Notes[0].Content)
	}
	if s.Notes[0].UpdatedAt == "" {
		t.Error("expected updated_at to be set")
	}

	if UpdateNote(tree, "body_deep", "no-such-note", "x") {
		t.Error("expected update of unknown note id to be a no-op")
	}

	if !RemoveNote(tree, "body_deep", note.ID) {
		t.Fatal("expected note removal to succeed")
	}
	if len(Find(tree, "body_deep").Notes) != 0 {
		t.Error("note still present after removal")
	}
}

func TestSetQuestions_ReplacedWholesale(t *testing.T) {
	tree := sampleTree()

	SetQuestions(tree, "intro", []string{"q1", "q2"})
	SetQuestions(tree, "intro", []string{"q3"})

	s := Find(tree, "intro")
	if len(s.GeneratedQuestions) != 1 || s.GeneratedQuestions[0] != "q3" {
		t.Errorf("expected latest response to replace questions, got %v", s.GeneratedQuestions)
	}
}

func TestRemoveSection_DeletesSubtree(t *testing.T) {
	tree := sampleTree()

	if !RemoveSection(&tree, "body_deep") {
		t.Fatal("expected removal to succeed")
	}
	if Find(tree, "body_deep") != nil || Find(tree, "body_deeper") != nil {
		t.Error("removed subtree still reachable")
	}
	if Find(tree, "body") == nil {
		t.Error("parent section disappeared")
	}
}
