package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/mlevasseur/reportforge/internal/anonymizer"
	"github.com/mlevasseur/reportforge/internal/chunker"
	"github.com/mlevasseur/reportforge/internal/contextindex"
	"github.com/mlevasseur/reportforge/internal/parser"
)

// Worker processes one ingestion job at a time: parse, chunk,
// anonymize, index.
type Worker struct {
	anon     *anonymizer.Anonymizer
	index    *contextindex.Index
	docs     *Registry
	log      *slog.Logger
	chunkCfg chunker.Config
}

func NewWorker(anon *anonymizer.Anonymizer, index *contextindex.Index, docs *Registry, log *slog.Logger, chunkCfg chunker.Config) *Worker {
	return &Worker{
		anon:     anon,
		index:    index,
		docs:     docs,
		log:      log,
		chunkCfg: chunkCfg,
	}
}

// Process runs the full pipeline for a job, advancing its step as each
// phase completes. Errors mark the job failed; they are not returned
// because the caller polls job state.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("item_id", job.ID, "filename", job.Filename)
	log.Info("processing document")

	if err := w.process(ctx, job); err != nil {
		log.Error("processing failed", "error", err)
		job.Fail(err.Error())
		return
	}

	job.SetStep(StepCompleted)
	log.Info("document indexed")
}

func (w *Worker) process(ctx context.Context, job *Job) error {
	job.SetStep(StepReading)
	data := job.FileData()
	if len(data) == 0 {
		return fmt.Errorf("no file data for job %s", job.ID)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	job.SetStep(StepExtractingText)
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		return fmt.Errorf("selecting parser: %w", err)
	}
	tree, err := p.Parse(bytes.NewReader(data), job.Filename)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", job.Filename, err)
	}

	job.SetStep(StepChunking)
	chunks := chunker.ChunkTree(tree, w.chunkCfg)
	if len(chunks) == 0 {
		return fmt.Errorf("no usable text in %s", job.Filename)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	job.SetStep(StepAnonymizing)
	for i := range chunks {
		chunks[i].Text = w.anon.Anonymize(chunks[i].Text)
	}

	job.SetStep(StepIndexing)
	// Re-ingesting the same content replaces the previous index entries.
	w.index.Remove(job.ID)
	w.index.Add(job.ID, chunks)
	w.docs.Put(Document{
		ID:       job.ID,
		Filename: job.Filename,
		Title:    tree.Title,
		Chunks:   len(chunks),
	})

	// Raw bytes are no longer needed once indexed.
	job.SetFileData(nil)
	return nil
}
