package pipeline

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatch_StopsWhenAllTerminal(t *testing.T) {
	var calls atomic.Int32
	fetch := func() []Status {
		n := calls.Add(1)
		if n < 3 {
			return []Status{
				{ItemID: "a", Step: StepCompleted, Progress: 100},
				{ItemID: "b", Step: StepChunking, Progress: 65},
			}
		}
		return []Status{
			{ItemID: "a", Step: StepCompleted, Progress: 100},
			{ItemID: "b", Step: StepFailed, Progress: -1},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var batches int
	for range Watch(ctx, time.Millisecond, fetch) {
		batches++
	}

	if batches != 3 {
		t.Errorf("expected 3 batches before stop, got %d", batches)
	}
}

func TestWatch_EmptyBatchStopsImmediately(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var batches int
	for range Watch(ctx, time.Millisecond, func() []Status { return nil }) {
		batches++
	}

	if batches != 1 {
		t.Errorf("expected a single empty batch, got %d", batches)
	}
}

func TestWatch_CancelStopsPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := Watch(ctx, time.Millisecond, func() []Status {
		return []Status{{ItemID: "a", Step: StepReading, Progress: 10}}
	})

	<-ch
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestOrchestrator_SubmitQueueFull(t *testing.T) {
	o := NewOrchestrator(Options{WorkerCount: 1, MaxQueueSize: 1}, nil, nil, nil)
	// Workers not started, so the queue never drains.
	if _, err := o.Submit("first.md", []byte("alpha")); err != nil {
		t.Fatalf("first submit should queue: %v", err)
	}
	job, err := o.Submit("second.md", []byte("beta"))
	if err == nil {
		t.Fatal("expected queue-full error")
	}
	if s := job.Snapshot(); !s.Terminal() {
		t.Errorf("rejected job should be failed: %+v", s)
	}
}

func TestOrchestrator_StatusesSkipsUnknown(t *testing.T) {
	o := NewOrchestrator(Options{}, nil, nil, nil)
	job, err := o.Submit("doc.md", []byte("content"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	statuses := o.Statuses([]string{job.ID, "missing"})
	if len(statuses) != 1 || statuses[0].ItemID != job.ID {
		t.Errorf("unexpected statuses: %v", statuses)
	}
}
