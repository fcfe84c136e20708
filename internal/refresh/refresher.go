package refresh

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/logger"
	"github.com/mento-labs/airdrop-allocator/internal/messaging"
	"github.com/mento-labs/airdrop-allocator/internal/providers/analytics"
	"github.com/mento-labs/airdrop-allocator/internal/store"
)

// Config holds the refresh decision thresholds
type Config struct {
	AllocationQueryID int64
	StatsQueryID      int64
	// ImportStuckAfter is how old an unfinished import may be before it is
	// presumed abandoned and restarted
	ImportStuckAfter  time.Duration
	StatsPollInterval time.Duration
	StatsPollRetries  int
	// MaxAllocation is the campaign reward cap; zero disables the cap check
	MaxAllocation float64
}

// Refresher decides on each invocation whether a new import must be started,
// an abandoned one restarted, or nothing done at all
type Refresher struct {
	store      store.Store
	analytics  analytics.Client
	dispatcher messaging.Dispatcher
	clock      adapter.Clock
	config     Config
}

// NewRefresher creates a new refresh orchestrator
func NewRefresher(
	st store.Store,
	client analytics.Client,
	dispatcher messaging.Dispatcher,
	clock adapter.Clock,
	cfg Config,
) *Refresher {
	return &Refresher{
		store:      st,
		analytics:  client,
		dispatcher: dispatcher,
		clock:      clock,
		config:     cfg,
	}
}

// Refresh runs the orchestration state machine once
func (r *Refresher) Refresh(ctx context.Context) (domain.RefreshOutcome, error) {
	latest, err := r.store.GetLatestExecution(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read latest execution: %w", err)
	}

	if latest != nil && r.config.MaxAllocation > 0 && latest.Stats.MentoAllocated >= r.config.MaxAllocation {
		logger.WarnCtx(ctx, "allocation cap reached, refusing to start imports",
			zap.Float64("mentoAllocated", latest.Stats.MentoAllocated),
			zap.Float64("cap", r.config.MaxAllocation),
		)
		return domain.RefreshSkippedCap, nil
	}

	upstream, err := r.analytics.LatestQueryResults(ctx, r.config.AllocationQueryID, 1, 0)
	if err != nil {
		return "", fmt.Errorf("failed to fetch upstream execution: %w", err)
	}

	cached, err := r.store.GetExecution(ctx, upstream.ExecutionID)
	if err != nil {
		return "", fmt.Errorf("failed to read cached execution %s: %w", upstream.ExecutionID, err)
	}

	switch {
	case cached == nil:
		logger.InfoCtx(ctx, "new upstream execution, starting import",
			zap.String("executionId", upstream.ExecutionID),
			zap.Int64("totalRows", upstream.Result.Metadata.TotalRowCount),
		)
		if err := r.startImport(ctx, upstream); err != nil {
			return "", err
		}
		return domain.RefreshStarted, nil

	case !cached.ImportFinished && r.clock.Since(time.UnixMilli(cached.Timestamp)) > r.config.ImportStuckAfter:
		logger.WarnCtx(ctx, "unfinished import presumed stuck, restarting",
			zap.String("executionId", upstream.ExecutionID),
			zap.Int64("timestamp", cached.Timestamp),
		)
		if err := r.startImport(ctx, upstream); err != nil {
			return "", err
		}
		return domain.RefreshStarted, nil

	default:
		// Finished, or in progress and not yet stale
		return domain.RefreshSkippedFresh, nil
	}
}

// startImport resets the row counter, computes campaign stats, persists the
// execution record and fans out one task per import batch
func (r *Refresher) startImport(ctx context.Context, upstream *analytics.ResultsResponse) error {
	if err := r.store.ResetAllocationsImported(ctx, upstream.ExecutionID); err != nil {
		return fmt.Errorf("failed to reset row counter: %w", err)
	}

	stats, err := r.airdropStats(ctx, upstream.ExecutionEndedAt)
	if err != nil {
		return fmt.Errorf("failed to compute airdrop stats: %w", err)
	}

	execution := &domain.Execution{
		ExecutionID:    upstream.ExecutionID,
		Timestamp:      upstream.ExecutionEndedAt.UnixMilli(),
		ImportFinished: false,
		Rows:           upstream.Result.Metadata.TotalRowCount,
		Stats:          stats,
	}
	if err := r.store.SaveExecution(ctx, execution); err != nil {
		return fmt.Errorf("failed to save execution %s: %w", execution.ExecutionID, err)
	}

	if _, err := r.dispatcher.ScheduleImportTasks(ctx, execution.ExecutionID, execution.Rows); err != nil {
		return fmt.Errorf("failed to schedule import tasks: %w", err)
	}

	return nil
}

// airdropStats fetches the latest stats query result, re-executing the query
// first when its result predates the snapshot being imported. Stats must
// exist; there is no partial-stats fallback.
func (r *Refresher) airdropStats(ctx context.Context, staleIfOlderThan time.Time) (domain.Stats, error) {
	result, err := r.analytics.LatestQueryResults(ctx, r.config.StatsQueryID, 1, 0)
	if err != nil {
		return domain.Stats{}, err
	}

	if result.ExecutionStartedAt.Before(staleIfOlderThan) {
		logger.InfoCtx(ctx, "stats are stale, re-executing stats query",
			zap.String("staleExecutionId", result.ExecutionID),
		)
		result, err = r.refreshStats(ctx, result.ExecutionID)
		if err != nil {
			return domain.Stats{}, err
		}
	}

	if len(result.Result.Rows) == 0 {
		return domain.Stats{}, fmt.Errorf("stats query %d returned no rows", r.config.StatsQueryID)
	}

	row, err := analytics.DecodeStatsRow(result.Result.Rows[0])
	if err != nil {
		// The row shape is a hard contract with the provider
		return domain.Stats{}, err
	}

	return domain.Stats{
		Block:          row.Block,
		Recipients:     row.Recipients,
		MentoAllocated: row.TotalMentoEarned,
	}, nil
}

// refreshStats triggers a re-execution of the stats query and polls until the
// reported execution id changes from staleExecutionID
func (r *Refresher) refreshStats(ctx context.Context, staleExecutionID string) (*analytics.ResultsResponse, error) {
	if _, err := r.analytics.ExecuteQuery(ctx, r.config.StatsQueryID); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < r.config.StatsPollRetries; attempt++ {
		r.clock.Sleep(r.config.StatsPollInterval)

		result, err := r.analytics.LatestQueryResults(ctx, r.config.StatsQueryID, 1, 0)
		if err != nil {
			return nil, err
		}
		if result.ExecutionID != staleExecutionID {
			return result, nil
		}

		logger.DebugCtx(ctx, "stats query not refreshed yet",
			zap.String("executionId", staleExecutionID),
			zap.Int("attempt", attempt+1),
		)
	}

	return nil, fmt.Errorf("%w after %d attempts", domain.ErrStatsNotRefreshed, r.config.StatsPollRetries)
}
