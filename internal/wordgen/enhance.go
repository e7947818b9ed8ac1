package wordgen

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mlevasseur/reportforge/internal/ai"
	"github.com/mlevasseur/reportforge/internal/report"
)

// Enhance runs every written section through the LLM improvement pass
// and returns a polished copy of the report. The working report is
// never modified. Sections that still fail after retries keep their
// original text; export should not be blocked by a flaky provider.
func Enhance(ctx context.Context, c ai.Client, log *slog.Logger, r *report.Report) (*report.Report, error) {
	if r == nil || c == nil {
		return r, nil
	}

	out := r.Clone()
	var walk func(sections []*report.Section) error
	walk = func(sections []*report.Section) error {
		for _, s := range sections {
			if strings.TrimSpace(s.Content) != "" {
				improved, err := improveWithRetry(ctx, c, s)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					log.Warn("enhancement skipped", "section_id", s.ID, "error", err)
				} else {
					s.Content = improved
				}
			}
			if err := walk(s.Subsections); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(out.Plan.Sections); err != nil {
		return nil, err
	}
	return out, nil
}

func improveWithRetry(ctx context.Context, c ai.Client, s *report.Section) (string, error) {
	var lastErr error
	for attempt := 0; attempt < ai.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(ai.Backoff(attempt)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		improved, err := ai.ImproveText(ctx, c, s.Content, s.Title+": "+s.Description, "")
		if err == nil {
			return improved, nil
		}
		lastErr = err
		if !ai.IsRetryable(err) {
			break
		}
	}
	return "", lastErr
}
