package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mlevasseur/reportforge/internal/anonymizer"
	"github.com/mlevasseur/reportforge/internal/chunker"
	"github.com/mlevasseur/reportforge/internal/contextindex"
)

// Options configures the orchestrator.
type Options struct {
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration
	ChunkConfig  chunker.Config
}

// Orchestrator manages the document ingestion pipeline.
type Orchestrator struct {
	jobs  *JobStore
	docs  *Registry
	queue chan *Job
	anon  *anonymizer.Anonymizer
	index *contextindex.Index
	log   *slog.Logger
	opts  Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(opts Options, anon *anonymizer.Anonymizer, index *contextindex.Index, log *slog.Logger) *Orchestrator {
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = 2
	}
	if opts.MaxQueueSize <= 0 {
		opts.MaxQueueSize = 32
	}
	if opts.JobTTL <= 0 {
		opts.JobTTL = time.Hour
	}
	return &Orchestrator{
		jobs:  NewJobStore(opts.JobTTL),
		docs:  NewRegistry(),
		queue: make(chan *Job, opts.MaxQueueSize),
		anon:  anon,
		index: index,
		log:   log,
		opts:  opts,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.opts.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.anon, o.index, o.docs, o.log, o.opts.ChunkConfig)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit registers a new upload and queues it for processing. The job
// id is the content hash, so re-uploading identical bytes re-ingests
// under the same id.
func (o *Orchestrator) Submit(filename string, data []byte) (*Job, error) {
	now := time.Now()
	job := &Job{
		ID:        ContentHashHex(data),
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)
	job.SetStep(StepReading)
	o.jobs.Put(job)

	select {
	case o.queue <- job:
		return job, nil
	default:
		job.Fail("queue full")
		return job, fmt.Errorf("job queue is full (%d)", o.opts.MaxQueueSize)
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// Statuses returns the current status of the requested jobs. Unknown
// ids are skipped.
func (o *Orchestrator) Statuses(ids []string) []Status {
	out := make([]Status, 0, len(ids))
	for _, id := range ids {
		if job := o.jobs.Get(id); job != nil {
			out = append(out, job.Snapshot())
		}
	}
	return out
}

// Documents returns the registry of ingested documents.
func (o *Orchestrator) Documents() *Registry {
	return o.docs
}

// RemoveDocument drops a document from the registry and the index.
func (o *Orchestrator) RemoveDocument(id string) bool {
	if !o.docs.Remove(id) {
		return false
	}
	o.index.Remove(id)
	o.jobs.Remove(id)
	return true
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
