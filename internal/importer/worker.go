package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/logger"
	"github.com/mento-labs/airdrop-allocator/internal/providers/analytics"
	"github.com/mento-labs/airdrop-allocator/internal/store"
)

// Config holds the import worker settings
type Config struct {
	// MaxAllocation is the campaign reward cap; zero disables the cap warning
	MaxAllocation float64
	// ForceSingleBatch finalizes after the first batch regardless of the row
	// counter, for constrained development environments
	ForceSingleBatch bool
}

// Worker processes one import batch per task. Tasks are delivered
// at-least-once, so every step after the allocation write must tolerate
// re-execution.
type Worker struct {
	store     store.Store
	analytics analytics.Client
	config    Config
}

// NewWorker creates a new import worker
func NewWorker(st store.Store, client analytics.Client, cfg Config) *Worker {
	return &Worker{
		store:     st,
		analytics: client,
		config:    cfg,
	}
}

// HandleTask imports one batch of allocation rows: fetch, decode, persist,
// advance the row counter, and finalize the execution when the counter
// reaches the expected total.
func (w *Worker) HandleTask(ctx context.Context, task domain.ImportTask) error {
	result, err := w.analytics.GetExecutionResults(ctx, task.ExecutionID, task.Limit, task.Offset)
	if err != nil {
		return fmt.Errorf("failed to fetch batch rows: %w", err)
	}

	rows, err := analytics.DecodeAllocationRows(result.Result.Rows)
	if err != nil {
		// Writing wrong allocation data is worse than a visible failure
		return fmt.Errorf("failed to decode batch rows: %w", err)
	}

	if err := w.store.SaveAllocations(ctx, task.ExecutionID, rows); err != nil {
		return fmt.Errorf("failed to save allocations: %w", err)
	}

	totalImported, err := w.store.IncrementAllocationsImported(ctx, task.ExecutionID, int64(len(rows)))
	if err != nil {
		return fmt.Errorf("failed to advance row counter: %w", err)
	}

	execution, err := w.store.GetExecution(ctx, task.ExecutionID)
	if err != nil {
		return fmt.Errorf("failed to read execution: %w", err)
	}
	if execution == nil {
		// The refresher writes the record before dispatching batches
		return fmt.Errorf("%w: %s", domain.ErrExecutionNotFound, task.ExecutionID)
	}

	logger.InfoCtx(ctx, "imported batch",
		zap.String("executionId", task.ExecutionID),
		zap.Int64("batchIndex", task.BatchIndex),
		zap.Int("rows", len(rows)),
		zap.Int64("totalImported", totalImported),
		zap.Int64("expected", execution.Rows),
	)

	// Redelivered batches can push the counter past the expected total, so
	// the comparison must not demand exact equality
	if totalImported >= execution.Rows || w.config.ForceSingleBatch {
		if err := w.finalize(ctx, execution); err != nil {
			return fmt.Errorf("failed to finalize execution: %w", err)
		}
	}

	return nil
}

// finalize marks the execution finished and promotes it to latest. Both
// writes are full overwrites of the same computed state, so racing workers
// and redelivered batches repeat them harmlessly.
func (w *Worker) finalize(ctx context.Context, execution *domain.Execution) error {
	finished := *execution
	finished.ImportFinished = true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.store.SaveLatestExecution(gctx, &finished)
	})
	g.Go(func() error {
		return w.store.SaveExecution(gctx, &finished)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "finished import",
		zap.String("executionId", finished.ExecutionID),
		zap.Int64("rows", finished.Rows),
	)

	if w.config.MaxAllocation > 0 && finished.Stats.MentoAllocated >= w.config.MaxAllocation {
		logger.WarnCtx(ctx, "airdrop maximum allocation met",
			zap.Int64("timestamp", finished.Timestamp),
			zap.Float64("mentoAllocated", finished.Stats.MentoAllocated),
		)
	}

	return nil
}
