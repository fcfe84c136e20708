package refresh

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/logger"
)

// Scheduler runs the refresher on a fixed interval until its context is
// canceled
type Scheduler struct {
	refresher *Refresher
	interval  time.Duration
}

// NewScheduler creates a new refresh scheduler
func NewScheduler(refresher *Refresher, interval time.Duration) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
	}
}

// Start runs one refresh immediately and then one per interval. Failures are
// logged and the loop keeps going; the next tick retries from scratch.
func (s *Scheduler) Start(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting refresh scheduler",
		zap.Duration("interval", s.interval),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Refresh scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	outcome, err := s.refresher.Refresh(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "refresher"))
		return
	}

	if outcome == domain.RefreshStarted {
		logger.InfoCtx(ctx, "refresh started an import")
	} else {
		logger.DebugCtx(ctx, "refresh skipped", zap.String("outcome", string(outcome)))
	}
}
