package report

import "testing"

func flatTree(statuses ...Status) []*Section {
	secs := make([]*Section, len(statuses))
	for i, st := range statuses {
		secs[i] = &Section{
			ID:       string(rune('a' + i)),
			Title:    "Section",
			Required: true,
			Order:    i + 1,
			Status:   st,
		}
	}
	return secs
}

func TestCalculateProgress_HalfCompleted(t *testing.T) {
	tree := flatTree(StatusCompleted, StatusCompleted, StatusInProgress, StatusNotStarted)

	p := CalculateProgress(tree)

	if p.TotalSections != 4 {
		t.Fatalf("expected 4 total sections, got %d", p.TotalSections)
	}
	if p.Completed != 2 || p.InProgress != 1 || p.NotStarted != 1 {
		t.Errorf("unexpected buckets: completed=%d in_progress=%d not_started=%d",
			p.Completed, p.InProgress, p.NotStarted)
	}
	if p.ProgressPercentage != 50 {
		t.Errorf("expected 50%%, got %v", p.ProgressPercentage)
	}
}

func TestCalculateProgress_BucketsSumToTotal(t *testing.T) {
	tree := []*Section{
		{ID: "a", Required: true, Status: StatusCompleted, Subsections: []*Section{
			{ID: "a1", Required: true, Status: StatusInProgress},
			{ID: "a2", Required: false, Status: StatusCompleted},
			{ID: "a3", Required: true, Status: StatusNeedsReview, Subsections: []*Section{
				{ID: "a3x", Required: true, Status: StatusValidated},
			}},
		}},
		{ID: "b", Required: false, Status: StatusNotStarted},
		{ID: "c", Required: true, Status: StatusNotStarted},
	}

	p := CalculateProgress(tree)

	if p.Completed+p.InProgress+p.NotStarted != p.TotalSections {
		t.Fatalf("buckets %d+%d+%d do not sum to total %d",
			p.Completed, p.InProgress, p.NotStarted, p.TotalSections)
	}
	// Required at any depth: a, a1, a3, a3x, c.
	if p.TotalSections != 5 {
		t.Errorf("expected 5 required sections, got %d", p.TotalSections)
	}
}

func TestCalculateProgress_NeedsReviewCountsAsNotStarted(t *testing.T) {
	// needs_review is deliberately bucketed as not started: it is neither
	// completed nor separately tracked in the aggregate.
	tree := flatTree(StatusNeedsReview, StatusCompleted)

	p := CalculateProgress(tree)

	if p.NotStarted != 1 {
		t.Errorf("expected needs_review section in not_started bucket, got %d", p.NotStarted)
	}
	if p.InProgress != 0 {
		t.Errorf("expected 0 in_progress, got %d", p.InProgress)
	}
	if p.ProgressPercentage != 50 {
		t.Errorf("expected 50%%, got %v", p.ProgressPercentage)
	}
}

func TestCalculateProgress_EmptyTree(t *testing.T) {
	p := CalculateProgress(nil)
	if p.TotalSections != 0 || p.ProgressPercentage != 0 {
		t.Errorf("expected zeroed progress, got %+v", p)
	}
}

func TestCalculateProgress_Idempotent(t *testing.T) {
	tree := flatTree(StatusCompleted, StatusInProgress, StatusNotStarted)

	first := CalculateProgress(tree)
	second := CalculateProgress(tree)

	if first != second {
		t.Errorf("progress not idempotent: %+v vs %+v", first, second)
	}
}

func TestCalculateProgress_OnlyRequiredCounted(t *testing.T) {
	tree := []*Section{
		{ID: "a", Required: false, Status: StatusCompleted},
		{ID: "b", Required: false, Status: StatusCompleted},
	}

	p := CalculateProgress(tree)

	if p.TotalSections != 0 {
		t.Errorf("expected 0 required sections, got %d", p.TotalSections)
	}
	if p.ProgressPercentage != 0 {
		t.Errorf("expected 0%% on empty required set, got %v", p.ProgressPercentage)
	}
}

func TestCalculateProgress_RoundsToOneDecimal(t *testing.T) {
	// 1 of 3 completed -> 33.3.
	tree := flatTree(StatusCompleted, StatusNotStarted, StatusNotStarted)

	p := CalculateProgress(tree)

	if p.ProgressPercentage != 33.3 {
		t.Errorf("expected 33.3, got %v", p.ProgressPercentage)
	}
}
