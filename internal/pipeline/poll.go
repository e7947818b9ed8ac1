package pipeline

import (
	"context"
	"time"
)

// Watch polls fetch at the given interval and sends each batch of
// statuses on the returned channel. Polling stops — and the channel is
// closed — once every status in a batch is terminal, or when ctx is
// cancelled. An empty batch counts as terminal: there is nothing left
// to watch.
func Watch(ctx context.Context, interval time.Duration, fetch func() []Status) <-chan []Status {
	if interval <= 0 {
		interval = time.Second
	}
	out := make(chan []Status)

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			statuses := fetch()

			select {
			case out <- statuses:
			case <-ctx.Done():
				return
			}

			if allTerminal(statuses) {
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func allTerminal(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Terminal() {
			return false
		}
	}
	return true
}
