package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mlevasseur/reportforge/internal/anonymizer"
	"github.com/mlevasseur/reportforge/internal/chunker"
	"github.com/mlevasseur/reportforge/internal/contextindex"
)

func testWorker() (*Worker, *contextindex.Index, *Registry) {
	index := contextindex.New()
	docs := NewRegistry()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := chunker.Config{ChunkSize: 1500, ChunkOverlap: 200, MinChunk: 1}
	return NewWorker(anonymizer.New(), index, docs, log, cfg), index, docs
}

func TestWorker_ProcessMarkdownEndToEnd(t *testing.T) {
	w, index, docs := testWorker()

	content := []byte("# Guidelines\n\nAll sections must cite their sources and follow the style guide carefully.\n")
	job := &Job{ID: ContentHashHex(content), Filename: "guidelines.md"}
	job.SetFileData(content)

	w.Process(context.Background(), job)

	s := job.Snapshot()
	if s.Step != StepCompleted || s.Progress != 100 {
		t.Fatalf("job did not complete: %+v", s)
	}
	if index.Len() == 0 {
		t.Error("no chunks indexed")
	}
	if _, ok := docs.Get(job.ID); !ok {
		t.Error("document not registered")
	}
	if job.FileData() != nil {
		t.Error("raw bytes should be released after indexing")
	}
}

func TestWorker_ProcessFailsOnUnsupportedExtension(t *testing.T) {
	w, _, _ := testWorker()

	job := &Job{ID: "j1", Filename: "archive.zip"}
	job.SetFileData([]byte("not really a zip"))

	w.Process(context.Background(), job)

	s := job.Snapshot()
	if !s.Terminal() || s.Progress != FailedProgress {
		t.Errorf("expected failed job, got %+v", s)
	}
}

func TestWorker_ProcessFailsOnEmptyFile(t *testing.T) {
	w, _, _ := testWorker()

	job := &Job{ID: "j1", Filename: "empty.md"}

	w.Process(context.Background(), job)

	if s := job.Snapshot(); s.Step != StepFailed {
		t.Errorf("expected failure on empty upload, got %+v", s)
	}
}

func TestWorker_ReingestReplacesIndexEntries(t *testing.T) {
	w, index, _ := testWorker()

	content := []byte("# Notes\n\nFirst version of the reference notes with enough words to chunk.\n")
	job := &Job{ID: "same-id", Filename: "notes.md"}
	job.SetFileData(content)
	w.Process(context.Background(), job)
	first := index.Len()

	job2 := &Job{ID: "same-id", Filename: "notes.md"}
	job2.SetFileData(content)
	w.Process(context.Background(), job2)

	if index.Len() != first {
		t.Errorf("re-ingest should replace entries: %d -> %d", first, index.Len())
	}
}
