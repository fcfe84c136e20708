package importer_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/importer"
	"github.com/mento-labs/airdrop-allocator/internal/mocks"
	"github.com/mento-labs/airdrop-allocator/internal/providers/analytics"
)

var testTask = domain.ImportTask{
	ExecutionID: "01JD3",
	BatchIndex:  1,
	Offset:      10000,
	Limit:       10000,
}

func newTestWorker(t *testing.T, cfg importer.Config) (*mocks.MockStore, *mocks.MockAnalyticsClient, *importer.Worker) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	mockAnalytics := mocks.NewMockAnalyticsClient(ctrl)
	w := importer.NewWorker(mockStore, mockAnalytics, cfg)
	return mockStore, mockAnalytics, w
}

func allocationRowsJSON(count int) []json.RawMessage {
	rows := make([]json.RawMessage, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, json.RawMessage(fmt.Sprintf(`{
			"address": "0x%040x",
			"end_block": 21000000,
			"amount_transferred": 500.5,
			"avg_amount_held": 42.25
		}`, i+1)))
	}
	return rows
}

func batchResponse(rows []json.RawMessage) *analytics.ResultsResponse {
	return &analytics.ResultsResponse{
		ExecutionID: testTask.ExecutionID,
		Result: analytics.QueryResult{
			Metadata: analytics.ResultMetadata{
				RowCount:      int64(len(rows)),
				TotalRowCount: 25000,
			},
			Rows: rows,
		},
	}
}

func TestHandleTask_ImportsBatchWithoutFinalizing(t *testing.T) {
	mockStore, mockAnalytics, w := newTestWorker(t, importer.Config{})
	rows := allocationRowsJSON(3)

	mockAnalytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), "01JD3", int64(10000), int64(10000)).
		Return(batchResponse(rows), nil)
	mockStore.
		EXPECT().
		SaveAllocations(gomock.Any(), "01JD3", gomock.Len(3)).
		Return(nil)
	mockStore.
		EXPECT().
		IncrementAllocationsImported(gomock.Any(), "01JD3", int64(3)).
		Return(int64(10003), nil)
	mockStore.
		EXPECT().
		GetExecution(gomock.Any(), "01JD3").
		Return(&domain.Execution{ExecutionID: "01JD3", Rows: 25000}, nil)
	// Counter below the expected total, so no finalize writes happen

	assert.NoError(t, w.HandleTask(context.Background(), testTask))
}

func TestHandleTask_FinalizesWhenCounterReachesTotal(t *testing.T) {
	mockStore, mockAnalytics, w := newTestWorker(t, importer.Config{})
	rows := allocationRowsJSON(3)

	mockAnalytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), "01JD3", int64(10000), int64(10000)).
		Return(batchResponse(rows), nil)
	mockStore.
		EXPECT().
		SaveAllocations(gomock.Any(), "01JD3", gomock.Len(3)).
		Return(nil)
	mockStore.
		EXPECT().
		IncrementAllocationsImported(gomock.Any(), "01JD3", int64(3)).
		Return(int64(25000), nil)
	mockStore.
		EXPECT().
		GetExecution(gomock.Any(), "01JD3").
		Return(&domain.Execution{
			ExecutionID: "01JD3",
			Timestamp:   1700000000000,
			Rows:        25000,
		}, nil)
	mockStore.
		EXPECT().
		SaveLatestExecution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, execution *domain.Execution) error {
			assert.True(t, execution.ImportFinished)
			assert.Equal(t, "01JD3", execution.ExecutionID)
			return nil
		})
	mockStore.
		EXPECT().
		SaveExecution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, execution *domain.Execution) error {
			assert.True(t, execution.ImportFinished)
			return nil
		})

	assert.NoError(t, w.HandleTask(context.Background(), testTask))
}

func TestHandleTask_RedeliveredBatchOvercountsAndStillFinalizes(t *testing.T) {
	mockStore, mockAnalytics, w := newTestWorker(t, importer.Config{})
	rows := allocationRowsJSON(3)

	mockAnalytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), "01JD3", int64(10000), int64(10000)).
		Return(batchResponse(rows), nil)
	mockStore.
		EXPECT().
		SaveAllocations(gomock.Any(), "01JD3", gomock.Len(3)).
		Return(nil)
	// A redelivered batch pushed the counter past the expected total
	mockStore.
		EXPECT().
		IncrementAllocationsImported(gomock.Any(), "01JD3", int64(3)).
		Return(int64(25003), nil)
	mockStore.
		EXPECT().
		GetExecution(gomock.Any(), "01JD3").
		Return(&domain.Execution{
			ExecutionID: "01JD3",
			Timestamp:   1700000000000,
			Rows:        25000,
			Stats:       domain.Stats{Block: 21000000, Recipients: 9001, MentoAllocated: 123456.5},
		}, nil)

	var savedLatest, savedByID domain.Execution
	mockStore.
		EXPECT().
		SaveLatestExecution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, execution *domain.Execution) error {
			savedLatest = *execution
			return nil
		})
	mockStore.
		EXPECT().
		SaveExecution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, execution *domain.Execution) error {
			savedByID = *execution
			return nil
		})

	assert.NoError(t, w.HandleTask(context.Background(), testTask))

	// Re-finalizing must write the same finished record to both keys
	assert.True(t, savedLatest.ImportFinished)
	assert.Equal(t, savedLatest, savedByID)
	assert.Equal(t, "01JD3", savedLatest.ExecutionID)
	assert.Equal(t, int64(1700000000000), savedLatest.Timestamp)
	assert.Equal(t, int64(25000), savedLatest.Rows)
}

func TestHandleTask_ForceSingleBatchFinalizesImmediately(t *testing.T) {
	mockStore, mockAnalytics, w := newTestWorker(t, importer.Config{ForceSingleBatch: true})
	rows := allocationRowsJSON(2)

	mockAnalytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), "01JD3", int64(10000), int64(10000)).
		Return(batchResponse(rows), nil)
	mockStore.
		EXPECT().
		SaveAllocations(gomock.Any(), "01JD3", gomock.Len(2)).
		Return(nil)
	mockStore.
		EXPECT().
		IncrementAllocationsImported(gomock.Any(), "01JD3", int64(2)).
		Return(int64(2), nil)
	mockStore.
		EXPECT().
		GetExecution(gomock.Any(), "01JD3").
		Return(&domain.Execution{ExecutionID: "01JD3", Rows: 25000}, nil)
	mockStore.
		EXPECT().
		SaveLatestExecution(gomock.Any(), gomock.Any()).
		Return(nil)
	mockStore.
		EXPECT().
		SaveExecution(gomock.Any(), gomock.Any()).
		Return(nil)

	assert.NoError(t, w.HandleTask(context.Background(), testTask))
}

func TestHandleTask_MissingExecutionRecord(t *testing.T) {
	mockStore, mockAnalytics, w := newTestWorker(t, importer.Config{})
	rows := allocationRowsJSON(1)

	mockAnalytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), "01JD3", int64(10000), int64(10000)).
		Return(batchResponse(rows), nil)
	mockStore.
		EXPECT().
		SaveAllocations(gomock.Any(), "01JD3", gomock.Any()).
		Return(nil)
	mockStore.
		EXPECT().
		IncrementAllocationsImported(gomock.Any(), "01JD3", int64(1)).
		Return(int64(1), nil)
	mockStore.
		EXPECT().
		GetExecution(gomock.Any(), "01JD3").
		Return(nil, nil)

	err := w.HandleTask(context.Background(), testTask)

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExecutionNotFound)
}

func TestHandleTask_MalformedRowFailsBatch(t *testing.T) {
	mockStore, mockAnalytics, w := newTestWorker(t, importer.Config{})
	rows := []json.RawMessage{
		json.RawMessage(`{"address": "0x1234567890abcdef1234567890abcdef12345678", "end_block": 1}`),
	}

	mockAnalytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), "01JD3", int64(10000), int64(10000)).
		Return(batchResponse(rows), nil)
	// Nothing is written when decoding fails
	mockStore.EXPECT().SaveAllocations(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := w.HandleTask(context.Background(), testTask)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestHandleTask_FetchFailure(t *testing.T) {
	_, mockAnalytics, w := newTestWorker(t, importer.Config{})

	mockAnalytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), "01JD3", int64(10000), int64(10000)).
		Return(nil, errors.New("upstream unavailable"))

	err := w.HandleTask(context.Background(), testTask)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch")
}

func TestHandleTask_FinalizeFailureSurfaces(t *testing.T) {
	mockStore, mockAnalytics, w := newTestWorker(t, importer.Config{})
	rows := allocationRowsJSON(1)

	mockAnalytics.
		EXPECT().
		GetExecutionResults(gomock.Any(), "01JD3", int64(10000), int64(10000)).
		Return(batchResponse(rows), nil)
	mockStore.
		EXPECT().
		SaveAllocations(gomock.Any(), "01JD3", gomock.Any()).
		Return(nil)
	mockStore.
		EXPECT().
		IncrementAllocationsImported(gomock.Any(), "01JD3", int64(1)).
		Return(int64(25000), nil)
	mockStore.
		EXPECT().
		GetExecution(gomock.Any(), "01JD3").
		Return(&domain.Execution{ExecutionID: "01JD3", Rows: 25000}, nil)
	mockStore.
		EXPECT().
		SaveLatestExecution(gomock.Any(), gomock.Any()).
		Return(errors.New("write failed")).
		AnyTimes()
	mockStore.
		EXPECT().
		SaveExecution(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	err := w.HandleTask(context.Background(), testTask)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "finalize")
}
