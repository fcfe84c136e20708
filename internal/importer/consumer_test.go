package importer_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/importer"
	"github.com/mento-labs/airdrop-allocator/internal/mocks"
	"github.com/mento-labs/airdrop-allocator/internal/providers/analytics"
)

// consumerHarness runs a Consumer against mocked NATS plumbing and hands the
// test the captured message handler.
type consumerHarness struct {
	store     *mocks.MockStore
	analytics *mocks.MockAnalyticsClient
	msg       *mocks.MockJetStreamMessage
	handler   adapter.MessageHandler
	done      chan struct{}
	cancel    context.CancelFunc
}

func startConsumer(t *testing.T) *consumerHarness {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	mockAnalytics := mocks.NewMockAnalyticsClient(ctrl)
	mockConn := mocks.NewMockNatsConn(ctrl)
	mockJS := mocks.NewMockJetStream(ctrl)
	mockNatsJS := mocks.NewMockNatsJetStream(ctrl)
	mockConsumer := mocks.NewMockNatsConsumer(ctrl)
	mockConsumeCtx := mocks.NewMockConsumeContext(ctrl)

	mockNatsJS.
		EXPECT().
		Connect("nats://localhost:4222", gomock.Any()).
		Return(mockConn, mockJS, nil)

	cfg := importer.ConsumerConfig{
		URL:            "nats://localhost:4222",
		StreamName:     "AIRDROP_IMPORTS",
		ConsumerName:   "importer",
		AckWaitTimeout: 5 * time.Minute,
		MaxDeliver:     5,
	}

	worker := importer.NewWorker(mockStore, mockAnalytics, importer.Config{})
	consumer, err := importer.NewConsumer(cfg, mockNatsJS, worker, adapter.NewJSON())
	require.NoError(t, err)

	h := &consumerHarness{
		store:     mockStore,
		analytics: mockAnalytics,
		msg:       mocks.NewMockJetStreamMessage(ctrl),
		done:      make(chan struct{}),
	}

	mockJS.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), "AIRDROP_IMPORTS", natsjs.ConsumerConfig{
			Durable:       "importer",
			AckPolicy:     natsjs.AckExplicitPolicy,
			AckWait:       5 * time.Minute,
			MaxDeliver:    5,
			FilterSubject: "imports.>",
		}).
		Return(mockConsumer, nil)

	handlerCh := make(chan adapter.MessageHandler, 1)
	mockConsumer.
		EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, _ ...natsjs.PullConsumeOpt) (adapter.ConsumeContext, error) {
			handlerCh <- handler
			return mockConsumeCtx, nil
		})
	// Shutdown races test cleanup, so the stop call is not strictly counted
	mockConsumeCtx.EXPECT().Stop().AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	t.Cleanup(cancel)

	go func() {
		_ = consumer.Run(ctx)
	}()

	select {
	case h.handler = <-handlerCh:
	case <-time.After(time.Second):
		t.Fatal("consumer did not subscribe")
	}

	return h
}

func (h *consumerHarness) await(t *testing.T) {
	select {
	case <-h.done:
	case <-time.After(time.Second):
		t.Fatal("message was not settled")
	}
}

func (h *consumerHarness) expectEmptyBatchFetch(executionID string) {
	h.analytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), executionID, gomock.Any(), gomock.Any()).
		Return(&analytics.ResultsResponse{
			ExecutionID: executionID,
			Result: analytics.QueryResult{
				Metadata: analytics.ResultMetadata{TotalRowCount: 25000},
			},
		}, nil)
}

func TestConsumer_AcksSuccessfulTask(t *testing.T) {
	h := startConsumer(t)

	task, err := json.Marshal(domain.ImportTask{ExecutionID: "01JD3", Limit: 10000})
	require.NoError(t, err)

	h.msg.EXPECT().Data().Return(task)
	h.store.
		EXPECT().
		SaveAllocations(gomock.Any(), "01JD3", gomock.Any()).
		Return(nil)
	h.store.
		EXPECT().
		IncrementAllocationsImported(gomock.Any(), "01JD3", int64(0)).
		Return(int64(0), nil)
	h.store.
		EXPECT().
		GetExecution(gomock.Any(), "01JD3").
		Return(&domain.Execution{ExecutionID: "01JD3", Rows: 25000}, nil)
	h.msg.
		EXPECT().
		Ack().
		DoAndReturn(func() error {
			close(h.done)
			return nil
		})

	h.expectEmptyBatchFetch("01JD3")

	h.handler(h.msg)
	h.await(t)
}

func TestConsumer_TerminatesMalformedTask(t *testing.T) {
	h := startConsumer(t)

	h.msg.EXPECT().Data().Return([]byte("{corrupt"))
	h.msg.
		EXPECT().
		Term().
		DoAndReturn(func() error {
			close(h.done)
			return nil
		})

	h.handler(h.msg)
	h.await(t)
}

func TestConsumer_TerminatesOnMissingExecution(t *testing.T) {
	h := startConsumer(t)

	task, err := json.Marshal(domain.ImportTask{ExecutionID: "01JD3", Limit: 10000})
	require.NoError(t, err)

	h.msg.EXPECT().Data().Return(task)
	h.store.
		EXPECT().
		SaveAllocations(gomock.Any(), "01JD3", gomock.Any()).
		Return(nil)
	h.store.
		EXPECT().
		IncrementAllocationsImported(gomock.Any(), "01JD3", int64(0)).
		Return(int64(0), nil)
	h.store.
		EXPECT().
		GetExecution(gomock.Any(), "01JD3").
		Return(nil, nil)
	h.msg.
		EXPECT().
		Term().
		DoAndReturn(func() error {
			close(h.done)
			return nil
		})

	h.expectEmptyBatchFetch("01JD3")

	h.handler(h.msg)
	h.await(t)
}
