package jetstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/logger"
	"github.com/mento-labs/airdrop-allocator/internal/messaging"
)

// SubjectRoot is the subject space import tasks are published under
const SubjectRoot = "imports"

// Config holds the configuration for the NATS JetStream dispatcher
type Config struct {
	URL              string
	StreamName       string
	MaxReconnects    int
	ReconnectWait    time.Duration
	ConnectionName   string
	BatchSize        int64
	ForceSingleBatch bool
}

type dispatcher struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	json   adapter.JSON
	config Config
}

// NewDispatcher creates a new NATS JetStream task dispatcher and ensures the
// import stream exists
func NewDispatcher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Dispatcher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.CreateOrUpdateStream(context.Background(), jetstream.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  []string{SubjectRoot + ".>"},
		Retention: jetstream.WorkQueuePolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}

	return &dispatcher{
		nc:     nc,
		js:     js,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// ScheduleImportTasks partitions the execution's rows into batches and
// publishes one task per batch
func (d *dispatcher) ScheduleImportTasks(ctx context.Context, executionID string, totalRows int64) (int64, error) {
	batches := (totalRows + d.config.BatchSize - 1) / d.config.BatchSize
	if batches == 0 {
		// A zero-row execution still needs one empty batch so the worker
		// runs the finalize step for it; otherwise the record stays
		// unfinished and gets restarted on every refresh
		batches = 1
	}
	if d.config.ForceSingleBatch && batches > 1 {
		logger.Warn("forcing single batch import",
			zap.String("executionId", executionID),
			zap.Int64("computedBatches", batches),
		)
		batches = 1
	}

	var errs []error
	for batchIndex := int64(0); batchIndex < batches; batchIndex++ {
		task := domain.ImportTask{
			ExecutionID: executionID,
			BatchIndex:  batchIndex,
			Offset:      d.config.BatchSize * batchIndex,
			Limit:       d.config.BatchSize,
		}
		if err := d.publishTask(ctx, task); err != nil {
			errs = append(errs, fmt.Errorf("batch %d: %w", batchIndex, err))
		}
	}

	if len(errs) > 0 {
		// Partially scheduled imports are surfaced for alerting, not repaired
		return batches, fmt.Errorf("failed to dispatch %d of %d batches: %w", len(errs), batches, errors.Join(errs...))
	}

	logger.InfoCtx(ctx, "scheduled import batches",
		zap.String("executionId", executionID),
		zap.Int64("batches", batches),
		zap.Int64("totalRows", totalRows),
	)

	return batches, nil
}

func (d *dispatcher) publishTask(ctx context.Context, task domain.ImportTask) error {
	data, err := d.json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	subject := fmt.Sprintf("%s.batch.%d", SubjectRoot, task.BatchIndex)
	if _, err := d.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish task: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (d *dispatcher) Close() {
	if d.nc == nil {
		return
	}

	d.nc.Close()
}
