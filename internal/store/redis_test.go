package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/mocks"
	"github.com/mento-labs/airdrop-allocator/internal/store"
)

const testAddress = domain.Address("0x1234567890abcdef1234567890abcdef12345678")

func newTestStore(t *testing.T) (*mocks.MockRedis, store.Store) {
	ctrl := gomock.NewController(t)
	mockRedis := mocks.NewMockRedis(ctrl)
	s := store.NewRedisStore(mockRedis, adapter.NewJSON(), store.Config{
		AllocationTTL:    72 * time.Hour,
		WriteChunkSize:   10,
		WriteConcurrency: 2,
	})
	return mockRedis, s
}

func TestGetExecution_Absent(t *testing.T) {
	mockRedis, s := newTestStore(t)

	mockRedis.
		EXPECT().
		Get(gomock.Any(), "execution:01JD3").
		Return("", adapter.ErrNil)

	execution, err := s.GetExecution(context.Background(), "01JD3")

	assert.NoError(t, err)
	assert.Nil(t, execution)
}

func TestGetExecution_MalformedRecordIsDeleted(t *testing.T) {
	mockRedis, s := newTestStore(t)

	mockRedis.
		EXPECT().
		Get(gomock.Any(), "execution:01JD3").
		Return("{corrupt", nil)
	mockRedis.
		EXPECT().
		Del(gomock.Any(), "execution:01JD3").
		Return(nil)

	execution, err := s.GetExecution(context.Background(), "01JD3")

	assert.NoError(t, err)
	assert.Nil(t, execution)
}

func TestGetLatestExecution_MalformedRecordIsNotDeleted(t *testing.T) {
	mockRedis, s := newTestStore(t)

	// The latest pointer is only ever overwritten by finalize, never deleted
	mockRedis.
		EXPECT().
		Get(gomock.Any(), "execution:latest").
		Return("{corrupt", nil)

	execution, err := s.GetLatestExecution(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, execution)
}

func TestGetLatestExecution(t *testing.T) {
	mockRedis, s := newTestStore(t)

	mockRedis.
		EXPECT().
		Get(gomock.Any(), "execution:latest").
		Return(`{"executionId":"01JD3","timestamp":1700000000000,"importFinished":true,"rows":25000,"stats":{"block":21000000,"recipients":1500,"mentoAllocated":200000.75}}`, nil)

	execution, err := s.GetLatestExecution(context.Background())

	require.NoError(t, err)
	require.NotNil(t, execution)
	assert.Equal(t, "01JD3", execution.ExecutionID)
	assert.True(t, execution.ImportFinished)
	assert.Equal(t, int64(25000), execution.Rows)
	assert.Equal(t, 200000.75, execution.Stats.MentoAllocated)
}

func TestSaveExecution_WritesRecordAndIndex(t *testing.T) {
	mockRedis, s := newTestStore(t)

	execution := &domain.Execution{
		ExecutionID:    "01JD3",
		Timestamp:      1700000000000,
		ImportFinished: false,
		Rows:           25000,
	}

	mockRedis.
		EXPECT().
		Set(gomock.Any(), "execution:01JD3", gomock.Any(), time.Duration(0)).
		DoAndReturn(func(_ context.Context, _ string, value string, _ time.Duration) error {
			var stored domain.Execution
			require.NoError(t, json.Unmarshal([]byte(value), &stored))
			assert.Equal(t, *execution, stored)
			return nil
		})
	mockRedis.
		EXPECT().
		ZAdd(gomock.Any(), "index:execution", float64(1700000000000), "01JD3").
		Return(nil)

	assert.NoError(t, s.SaveExecution(context.Background(), execution))
}

func TestSaveLatestExecution_WritesPointerOnly(t *testing.T) {
	mockRedis, s := newTestStore(t)

	execution := &domain.Execution{
		ExecutionID:    "01JD3",
		Timestamp:      1700000000000,
		ImportFinished: true,
		Rows:           25000,
	}

	mockRedis.
		EXPECT().
		Set(gomock.Any(), "execution:latest", gomock.Any(), time.Duration(0)).
		Return(nil)

	assert.NoError(t, s.SaveLatestExecution(context.Background(), execution))
}

func TestGetExecutions(t *testing.T) {
	mockRedis, s := newTestStore(t)

	mockRedis.
		EXPECT().
		ZRevRangeWithScores(gomock.Any(), "index:execution", int64(0), int64(-1)).
		Return([]adapter.ZMember{
			{Member: "01JD4", Score: 1700000100000},
			{Member: "01JD3", Score: 1700000000000},
		}, nil)

	refs, err := s.GetExecutions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []domain.ExecutionRef{
		{ExecutionID: "01JD4", Timestamp: 1700000100000},
		{ExecutionID: "01JD3", Timestamp: 1700000000000},
	}, refs)
}

func TestSaveAllocations(t *testing.T) {
	mockRedis, s := newTestStore(t)

	rows := []domain.AllocationRow{
		{Address: testAddress, EndBlock: 21000000, AmountTransferred: 500.5, AvgAmountHeld: 42},
	}

	mockRedis.
		EXPECT().
		SetEntries(gomock.Any(), []adapter.Entry{
			{Key: "allocation:01JD3:" + testAddress.String() + ":transfer-volume", Value: "500.5"},
			{Key: "allocation:01JD3:" + testAddress.String() + ":average-holdings", Value: "42"},
		}, 72*time.Hour).
		Return(nil)

	assert.NoError(t, s.SaveAllocations(context.Background(), "01JD3", rows))
}

func TestSaveAllocations_Empty(t *testing.T) {
	_, s := newTestStore(t)

	// No redis calls expected
	assert.NoError(t, s.SaveAllocations(context.Background(), "01JD3", nil))
}

func TestSaveAllocations_ChunkFailureFailsBatch(t *testing.T) {
	mockRedis, s := newTestStore(t)

	rows := make([]domain.AllocationRow, 10) // 20 entries, chunk size 10 -> 2 chunks
	for i := range rows {
		rows[i] = domain.AllocationRow{Address: testAddress}
	}

	mockRedis.
		EXPECT().
		SetEntries(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mockRedis.
		EXPECT().
		SetEntries(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("pipeline failed"))

	err := s.SaveAllocations(context.Background(), "01JD3", rows)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "01JD3")
}

func TestIncrementAllocationsImported(t *testing.T) {
	mockRedis, s := newTestStore(t)

	mockRedis.
		EXPECT().
		IncrBy(gomock.Any(), "execution:01JD3:rows-imported", int64(10000)).
		Return(int64(20000), nil)

	total, err := s.IncrementAllocationsImported(context.Background(), "01JD3", 10000)

	assert.NoError(t, err)
	assert.Equal(t, int64(20000), total)
}

func TestResetAllocationsImported(t *testing.T) {
	mockRedis, s := newTestStore(t)

	mockRedis.
		EXPECT().
		Del(gomock.Any(), "execution:01JD3:rows-imported").
		Return(nil)

	assert.NoError(t, s.ResetAllocationsImported(context.Background(), "01JD3"))
}

func TestGetAllocation(t *testing.T) {
	mockRedis, s := newTestStore(t)

	mockRedis.
		EXPECT().
		Get(gomock.Any(), "allocation:01JD3:"+testAddress.String()+":transfer-volume").
		Return("500.5", nil)
	mockRedis.
		EXPECT().
		Get(gomock.Any(), "allocation:01JD3:"+testAddress.String()+":average-holdings").
		Return("42.25", nil)

	allocation, err := s.GetAllocation(context.Background(), "01JD3", testAddress)

	require.NoError(t, err)
	require.NotNil(t, allocation)
	assert.Equal(t, 500.5, allocation.TransferVolume)
	assert.Equal(t, 42.25, allocation.AverageHoldings)
}

func TestGetAllocation_Absent(t *testing.T) {
	mockRedis, s := newTestStore(t)

	// A missing field cancels the sibling read, which may or may not run
	mockRedis.
		EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return("", adapter.ErrNil).
		AnyTimes()

	allocation, err := s.GetAllocation(context.Background(), "01JD3", testAddress)

	assert.NoError(t, err)
	assert.Nil(t, allocation)
}

func TestGetAllocation_UnparseableTreatedAsAbsent(t *testing.T) {
	mockRedis, s := newTestStore(t)

	mockRedis.
		EXPECT().
		Get(gomock.Any(), "allocation:01JD3:"+testAddress.String()+":transfer-volume").
		Return("not-a-float", nil)
	mockRedis.
		EXPECT().
		Get(gomock.Any(), "allocation:01JD3:"+testAddress.String()+":average-holdings").
		Return("42.25", nil)

	allocation, err := s.GetAllocation(context.Background(), "01JD3", testAddress)

	assert.NoError(t, err)
	assert.Nil(t, allocation)
}
