package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/logger"
)

// Key layout. Allocation fields are stored under two separate keys per
// address so the serving layer can read them independently.
const (
	keyLatestExecution = "execution:latest"
	keyExecutionIndex  = "index:execution"
)

func keyExecution(executionID string) string {
	return "execution:" + executionID
}

func keyAllocationsImported(executionID string) string {
	return "execution:" + executionID + ":rows-imported"
}

func keyTransferVolume(executionID string, address domain.Address) string {
	return fmt.Sprintf("allocation:%s:%s:transfer-volume", executionID, address)
}

func keyAverageHoldings(executionID string, address domain.Address) string {
	return fmt.Sprintf("allocation:%s:%s:average-holdings", executionID, address)
}

// Config holds the tuning knobs for bulk allocation writes
type Config struct {
	AllocationTTL    time.Duration
	WriteChunkSize   int
	WriteConcurrency int
}

// redisStore implements Store on top of the Redis adapter
type redisStore struct {
	redis  adapter.Redis
	json   adapter.JSON
	config Config
	pool   pond.Pool
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(redis adapter.Redis, json adapter.JSON, cfg Config) Store {
	return &redisStore{
		redis:  redis,
		json:   json,
		config: cfg,
		pool:   pond.NewPool(cfg.WriteConcurrency),
	}
}

func (s *redisStore) GetLatestExecution(ctx context.Context) (*domain.Execution, error) {
	return s.readExecution(ctx, keyLatestExecution, false)
}

func (s *redisStore) GetExecution(ctx context.Context, executionID string) (*domain.Execution, error) {
	return s.readExecution(ctx, keyExecution(executionID), true)
}

// readExecution reads an execution record through JSON. A record that fails to
// decode is reported as absent rather than failing the caller; by-id records
// are additionally deleted so the refresher re-imports them.
func (s *redisStore) readExecution(ctx context.Context, key string, deleteMalformed bool) (*domain.Execution, error) {
	raw, err := s.redis.Get(ctx, key)
	if err == adapter.ErrNil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var execution domain.Execution
	if err := s.json.Unmarshal([]byte(raw), &execution); err != nil {
		logger.WarnCtx(ctx, "malformed execution record, treating as absent",
			zap.String("key", key),
			zap.Error(err),
		)
		if deleteMalformed {
			if err := s.redis.Del(ctx, key); err != nil {
				logger.WarnCtx(ctx, "failed to delete malformed execution record",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
		return nil, nil
	}

	return &execution, nil
}

func (s *redisStore) SaveExecution(ctx context.Context, execution *domain.Execution) error {
	if err := s.writeExecution(ctx, keyExecution(execution.ExecutionID), execution); err != nil {
		return err
	}

	if err := s.redis.ZAdd(ctx, keyExecutionIndex, float64(execution.Timestamp), execution.ExecutionID); err != nil {
		return fmt.Errorf("failed to index execution %s: %w", execution.ExecutionID, err)
	}

	return nil
}

func (s *redisStore) SaveLatestExecution(ctx context.Context, execution *domain.Execution) error {
	return s.writeExecution(ctx, keyLatestExecution, execution)
}

func (s *redisStore) writeExecution(ctx context.Context, key string, execution *domain.Execution) error {
	data, err := s.json.Marshal(execution)
	if err != nil {
		return fmt.Errorf("failed to marshal execution %s: %w", execution.ExecutionID, err)
	}

	if err := s.redis.Set(ctx, key, string(data), 0); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return nil
}

func (s *redisStore) GetExecutions(ctx context.Context) ([]domain.ExecutionRef, error) {
	members, err := s.redis.ZRevRangeWithScores(ctx, keyExecutionIndex, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to read execution index: %w", err)
	}

	refs := make([]domain.ExecutionRef, 0, len(members))
	for _, m := range members {
		refs = append(refs, domain.ExecutionRef{
			ExecutionID: m.Member,
			Timestamp:   int64(m.Score),
		})
	}

	return refs, nil
}

func (s *redisStore) SaveAllocations(ctx context.Context, executionID string, rows []domain.AllocationRow) error {
	if len(rows) == 0 {
		return nil
	}

	entries := make([]adapter.Entry, 0, 2*len(rows))
	for _, row := range rows {
		entries = append(entries,
			adapter.Entry{
				Key:   keyTransferVolume(executionID, row.Address),
				Value: strconv.FormatFloat(row.AmountTransferred, 'f', -1, 64),
			},
			adapter.Entry{
				Key:   keyAverageHoldings(executionID, row.Address),
				Value: strconv.FormatFloat(row.AvgAmountHeld, 'f', -1, 64),
			},
		)
	}

	// Chunked pipelined writes with bounded concurrency; any chunk failure
	// fails the batch.
	group := s.pool.NewGroup()
	for start := 0; start < len(entries); start += s.config.WriteChunkSize {
		end := min(start+s.config.WriteChunkSize, len(entries))
		chunk := entries[start:end]
		group.SubmitErr(func() error {
			return s.redis.SetEntries(ctx, chunk, s.config.AllocationTTL)
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("failed to write allocations for execution %s: %w", executionID, err)
	}

	return nil
}

func (s *redisStore) IncrementAllocationsImported(ctx context.Context, executionID string, delta int64) (int64, error) {
	total, err := s.redis.IncrBy(ctx, keyAllocationsImported(executionID), delta)
	if err != nil {
		return 0, fmt.Errorf("failed to increment rows-imported for execution %s: %w", executionID, err)
	}
	return total, nil
}

func (s *redisStore) ResetAllocationsImported(ctx context.Context, executionID string) error {
	if err := s.redis.Del(ctx, keyAllocationsImported(executionID)); err != nil {
		return fmt.Errorf("failed to reset rows-imported for execution %s: %w", executionID, err)
	}
	return nil
}

func (s *redisStore) GetAllocation(ctx context.Context, executionID string, address domain.Address) (*domain.Allocation, error) {
	var transferVolume, averageHoldings string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transferVolume, err = s.redis.Get(gctx, keyTransferVolume(executionID, address))
		return err
	})
	g.Go(func() error {
		var err error
		averageHoldings, err = s.redis.Get(gctx, keyAverageHoldings(executionID, address))
		return err
	})

	if err := g.Wait(); err != nil {
		if err == adapter.ErrNil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read allocation for %s: %w", address, err)
	}

	volume, err := strconv.ParseFloat(transferVolume, 64)
	if err != nil {
		logger.WarnCtx(ctx, "unparseable transfer-volume field, treating allocation as absent",
			zap.String("executionId", executionID),
			zap.String("address", address.String()),
			zap.Error(err),
		)
		return nil, nil
	}

	holdings, err := strconv.ParseFloat(averageHoldings, 64)
	if err != nil {
		logger.WarnCtx(ctx, "unparseable average-holdings field, treating allocation as absent",
			zap.String("executionId", executionID),
			zap.String("address", address.String()),
			zap.Error(err),
		)
		return nil, nil
	}

	return &domain.Allocation{
		TransferVolume:  volume,
		AverageHoldings: holdings,
	}, nil
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx)
}

func (s *redisStore) Close() error {
	s.pool.StopAndWait()
	return s.redis.Close()
}
