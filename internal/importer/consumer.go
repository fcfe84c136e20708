package importer

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
	jsprovider "github.com/mento-labs/airdrop-allocator/internal/providers/jetstream"
)

// ConsumerConfig holds the configuration for the import task consumer
type ConsumerConfig struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

// Consumer pulls import tasks from the queue and feeds them to the worker
type Consumer struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	worker *Worker
	json   adapter.JSON
	config ConsumerConfig
}

// NewConsumer creates a new import task consumer
func NewConsumer(cfg ConsumerConfig, natsJS adapter.NatsJetStream, worker *Worker, jsonAdapter adapter.JSON) (*Consumer, error) {
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

	return &Consumer{
		nc:     nc,
		js:     js,
		worker: worker,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// Run consumes import tasks until the context is canceled
func (c *Consumer) Run(ctx context.Context) error {
	logger.Info("Starting import consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("consumer", c.config.ConsumerName),
	)

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWaitTimeout,
		MaxDeliver:    c.config.MaxDeliver,
		FilterSubject: jsprovider.SubjectRoot + ".>",
	}

	consumer, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming import tasks")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down import consumer")
			return ctx.Err()
		case msg := <-msgChan:
			go c.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes one task message. Invariant violations and
// malformed payloads are terminated; anything else is Nak'ed for redelivery.
func (c *Consumer) handleMessage(ctx context.Context, msg adapter.Message) {
	var task domain.ImportTask
	if err := c.json.Unmarshal(msg.Data(), &task); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "malformed import task, terminating"))
		c.term(ctx, msg)
		return
	}

	if err := c.worker.HandleTask(ctx, task); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("executionId", task.ExecutionID),
			zap.Int64("batchIndex", task.BatchIndex),
			zap.Int64("offset", task.Offset),
			zap.Int64("limit", task.Limit),
		)
		if errors.Is(err, domain.ErrExecutionNotFound) {
			// Contract between refresher and worker is broken; redelivery
			// cannot fix that
			c.term(ctx, msg)
		} else {
			if nakErr := msg.Nak(); nakErr != nil {
				logger.ErrorCtx(ctx, nakErr, zap.String("message", "failed to nak task"))
			}
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "failed to ack task"))
	}
}

func (c *Consumer) term(ctx context.Context, msg adapter.Message) {
	if err := msg.Term(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "failed to terminate task"))
	}
}

// Close closes the NATS connection
func (c *Consumer) Close() {
	if c.nc == nil {
		return
	}

	c.nc.Close()
}
