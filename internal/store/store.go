package store

import (
	"context"

	"github.com/mento-labs/airdrop-allocator/internal/domain"
)

// Store defines the typed operations against the execution and allocation
// records in the cache
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetLatestExecution returns the promoted "latest" execution, or nil if
	// none has ever been finalized. A malformed record is treated as absent.
	GetLatestExecution(ctx context.Context) (*domain.Execution, error)

	// GetExecution returns the execution with the given id, or nil if absent.
	// A malformed record is deleted and treated as absent.
	GetExecution(ctx context.Context, executionID string) (*domain.Execution, error)

	// SaveExecution overwrites the by-id execution record and indexes it by
	// timestamp
	SaveExecution(ctx context.Context, execution *domain.Execution) error

	// SaveLatestExecution overwrites the "latest" execution pointer
	SaveLatestExecution(ctx context.Context, execution *domain.Execution) error

	// GetExecutions lists known executions, newest first
	GetExecutions(ctx context.Context) ([]domain.ExecutionRef, error)

	// SaveAllocations writes the per-address allocation records of one batch
	// with a shared expiry. Any individual write failure fails the whole call.
	SaveAllocations(ctx context.Context, executionID string, rows []domain.AllocationRow) error

	// IncrementAllocationsImported atomically advances the per-execution row
	// counter and returns the post-increment total
	IncrementAllocationsImported(ctx context.Context, executionID string, delta int64) (int64, error)

	// ResetAllocationsImported deletes the per-execution row counter
	ResetAllocationsImported(ctx context.Context, executionID string) error

	// GetAllocation reads both per-address fields for one execution. Returns
	// nil when either field is missing or unparseable.
	GetAllocation(ctx context.Context, executionID string, address domain.Address) (*domain.Allocation, error)

	// Ping checks if the underlying store is reachable
	Ping(ctx context.Context) error

	// Close releases the store's resources
	Close() error
}
