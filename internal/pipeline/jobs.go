package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// Step identifies one phase of reference-document processing.
type Step string

const (
	StepReading        Step = "reading"
	StepExtractingText Step = "extracting_text"
	StepChunking       Step = "chunking"
	StepAnonymizing    Step = "anonymizing"
	StepIndexing       Step = "indexing"
	StepCompleted      Step = "completed"
	StepFailed         Step = "failed"
)

// stepInfo carries the display label and the progress value reported
// for a step. FailedProgress (-1) is the terminal failure marker.
type stepInfo struct {
	Label    string
	Progress int
}

const FailedProgress = -1

var steps = map[Step]stepInfo{
	StepReading:        {Label: "Reading file", Progress: 10},
	StepExtractingText: {Label: "Extracting text", Progress: 30},
	StepChunking:       {Label: "Splitting into chunks", Progress: 65},
	StepAnonymizing:    {Label: "Anonymizing", Progress: 75},
	StepIndexing:       {Label: "Indexing", Progress: 90},
	StepCompleted:      {Label: "Done", Progress: 100},
	StepFailed:         {Label: "Failed", Progress: FailedProgress},
}

// Job tracks the processing of one uploaded reference document.
type Job struct {
	mu sync.Mutex

	ID       string `json:"item_id"`
	Filename string `json:"filename"`

	Step      Step   `json:"step"`
	StepLabel string `json:"step_label"`
	Progress  int    `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
}

// SetStep advances the job to a known step. Unknown steps are ignored.
func (j *Job) SetStep(step Step) {
	info, ok := steps[step]
	if !ok {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Step = step
	j.StepLabel = info.Label
	j.Progress = info.Progress
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed, recording a truncated error in the label.
func (j *Job) Fail(errMsg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(errMsg) > 120 {
		errMsg = errMsg[:120]
	}
	j.Step = StepFailed
	j.StepLabel = "Failed: " + errMsg
	j.Progress = FailedProgress
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// Status is a read-only, JSON-safe copy of job state, shaped for the
// polling endpoint.
type Status struct {
	ItemID    string `json:"item_id"`
	Filename  string `json:"filename"`
	Step      Step   `json:"step"`
	StepLabel string `json:"step_label"`
	Progress  int    `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Status{
		ItemID:    j.ID,
		Filename:  j.Filename,
		Step:      j.Step,
		StepLabel: j.StepLabel,
		Progress:  j.Progress,
	}
}

// Terminal reports whether a polled status is final: completed, or any
// negative progress value (failure marker).
func (s Status) Terminal() bool {
	return s.Step == StepCompleted || s.Progress < 0
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *JobStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
// Used to derive stable document ids from uploads.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
