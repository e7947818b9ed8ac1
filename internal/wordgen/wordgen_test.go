package wordgen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mlevasseur/reportforge/internal/ai"
	"github.com/mlevasseur/reportforge/internal/report"
)

func TestGenerate_ProducesDocx(t *testing.T) {
	r := report.New(report.Metadata{
		StudentName:      "Durand",
		StudentFirstname: "Claire",
		CompanyName:      "Acme",
		Semester:         "S8",
	})
	report.SetContent(r.Plan.Sections, "introduction", "The internship took place at Acme.\n\nIt lasted six months.")

	var buf bytes.Buffer
	if err := Generate(&buf, r); err != nil {
		t.Fatalf("generate: %v", err)
	}
	// .docx is a zip container.
	if buf.Len() < 4 || !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Errorf("output is not a zip archive (%d bytes)", buf.Len())
	}
}

func TestGenerate_NilReport(t *testing.T) {
	if err := Generate(io.Discard, nil); err == nil {
		t.Error("expected error for nil report")
	}
}

// fakeClient returns canned responses for the enhancement pass.
type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) Generate(ctx context.Context, system, user string, _ ai.GenerateOptions) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) Provider() string { return "fake" }
func (f *fakeClient) Model() string    { return "fake-model" }
func (f *fakeClient) Close()           {}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnhance_RewritesContentOnClone(t *testing.T) {
	r := report.New(report.Metadata{})
	report.SetContent(r.Plan.Sections, "introduction", "rough draft text")

	c := &fakeClient{response: "polished text"}
	out, err := Enhance(context.Background(), c, discardLog(), r)
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}

	improved := report.Find(out.Plan.Sections, "introduction")
	if improved.Content != "polished text" {
		t.Errorf("content not improved: %q", improved.Content)
	}
	original := report.Find(r.Plan.Sections, "introduction")
	if original.Content != "rough draft text" {
		t.Errorf("working report was modified: %q", original.Content)
	}
}

func TestEnhance_KeepsOriginalOnFailure(t *testing.T) {
	r := report.New(report.Metadata{})
	report.SetContent(r.Plan.Sections, "introduction", "rough draft text")

	c := &fakeClient{err: errors.New("provider rejected request")}
	out, err := Enhance(context.Background(), c, discardLog(), r)
	if err != nil {
		t.Fatalf("non-retryable failure should not abort: %v", err)
	}

	s := report.Find(out.Plan.Sections, "introduction")
	if s.Content != "rough draft text" {
		t.Errorf("failed section should keep original text: %q", s.Content)
	}
	if c.calls != 1 {
		t.Errorf("non-retryable error should not retry, got %d calls", c.calls)
	}
}

func TestEnhance_SkipsEmptySections(t *testing.T) {
	r := report.New(report.Metadata{})

	c := &fakeClient{response: "should never be used"}
	if _, err := Enhance(context.Background(), c, discardLog(), r); err != nil {
		t.Fatal(err)
	}
	if c.calls != 0 {
		t.Errorf("empty sections should not hit the provider, got %d calls", c.calls)
	}
}
