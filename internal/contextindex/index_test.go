package contextindex

import (
	"strings"
	"testing"

	"github.com/mlevasseur/reportforge/internal/doctree"
)

func TestSearch_RanksByOverlap(t *testing.T) {
	ix := New()
	ix.Add("doc1", []doctree.Chunk{
		{Index: 0, Text: "The deployment pipeline builds container images nightly."},
		{Index: 1, Text: "Holiday schedule and cafeteria menu for the quarter."},
	})

	matches := ix.Search("container deployment", 5)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].ChunkIndex != 0 {
		t.Errorf("wrong chunk ranked first: %+v", matches[0])
	}
}

func TestSearch_TopK(t *testing.T) {
	ix := New()
	ix.Add("doc1", []doctree.Chunk{
		{Index: 0, Text: "testing strategy overview"},
		{Index: 1, Text: "testing tools comparison"},
		{Index: 2, Text: "testing checklist details"},
	})

	matches := ix.Search("testing", 2)
	if len(matches) != 2 {
		t.Errorf("expected k=2 results, got %d", len(matches))
	}
}

func TestSearch_NoOverlapReturnsNothing(t *testing.T) {
	ix := New()
	ix.Add("doc1", []doctree.Chunk{{Index: 0, Text: "quarterly revenue figures"}})

	if matches := ix.Search("kubernetes", 5); len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestRemove_DropsDocument(t *testing.T) {
	ix := New()
	ix.Add("doc1", []doctree.Chunk{{Index: 0, Text: "alpha content"}})
	ix.Add("doc2", []doctree.Chunk{{Index: 0, Text: "alpha content too"}})

	ix.Remove("doc1")

	if ix.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", ix.Len())
	}
	matches := ix.Search("alpha content", 5)
	if len(matches) != 1 || matches[0].DocID != "doc2" {
		t.Errorf("unexpected matches after removal: %v", matches)
	}
}

func TestContextText_IncludesBreadcrumb(t *testing.T) {
	text := ContextText([]Match{
		{Entry: Entry{Breadcrumb: []string{"Guide", "Safety"}, Text: "wear a helmet"}},
		{Entry: Entry{Text: "second excerpt"}},
	})

	if !strings.Contains(text, "[Guide > Safety]") {
		t.Errorf("breadcrumb missing: %s", text)
	}
	if !strings.Contains(text, "second excerpt") {
		t.Errorf("second match missing: %s", text)
	}
}
