// Package probe fires the documented requests at a running blog API and
// verifies every response.
package probe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/blogroutes/pkg/logger"
)

// ErrChecksFailed is returned by Run when any case failed.
var ErrChecksFailed = errors.New("probe checks failed")

// Run sends every case cfg.Rounds times using cfg.Workers workers.
func Run(ctx context.Context, cfg *Config, cases []Case, log logger.Logger) (*Stats, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid probe config: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	stats := &Stats{RunID: uuid.NewString(), StartTime: time.Now()}
	log.Info(ctx, "starting probe",
		logger.String("run_id", stats.RunID),
		logger.String("base_url", cfg.BaseURL),
		logger.Int("cases", len(cases)),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	jobs := make(chan Case, cfg.Workers*2)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		callErr error
	)
	record := func(c Case, reason string, err error) {
		mu.Lock()
		defer mu.Unlock()
		stats.Sent++
		switch {
		case err != nil:
			stats.Failed++
			stats.Failures = append(stats.Failures, Failure{Case: c.Name, Reason: err.Error()})
			if callErr == nil {
				callErr = err
			}
		case reason != "":
			stats.Failed++
			stats.Failures = append(stats.Failures, Failure{Case: c.Name, Reason: reason})
		default:
			stats.Passed++
		}
	}

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				reason, err := client.check(ctx, stats.RunID, c)
				record(c, reason, err)
				switch {
				case err != nil:
					log.Error(ctx, "case errored", logger.String("case", c.Name), logger.Error(err))
				case reason != "":
					log.Warn(ctx, "case failed", logger.String("case", c.Name), logger.String("reason", reason))
				case cfg.Verbose:
					log.Info(ctx, "case passed", logger.String("case", c.Name))
				}
			}
		}()
	}

feed:
	for r := 0; r < cfg.Rounds; r++ {
		for _, c := range cases {
			select {
			case <-ctx.Done():
				break feed
			case jobs <- c:
			}
		}
	}
	close(jobs)
	wg.Wait()

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "probe finished",
		logger.String("run_id", stats.RunID),
		logger.Int("sent", stats.Sent),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()))

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrChecksFailed, stats.Failed, stats.Sent)
	}
	return stats, nil
}
