package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
	"github.com/mento-labs/airdrop-allocator/internal/mocks"
	"github.com/mento-labs/airdrop-allocator/internal/providers/analytics"
)

const (
	testAPIURL = "https://analytics.example.com/api"
	testAPIKey = "test-key"
)

func newTestClient(t *testing.T) (*mocks.MockHTTPClient, analytics.Client) {
	ctrl := gomock.NewController(t)
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := analytics.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, testAPIKey)
	return mockHTTP, client
}

func TestLatestQueryResults(t *testing.T) {
	mockHTTP, client := newTestClient(t)

	body := []byte(`{
		"execution_id": "01JD3",
		"query_id": 42,
		"state": "QUERY_STATE_COMPLETED",
		"is_execution_finished": true,
		"result": {
			"metadata": {"row_count": 1, "total_row_count": 25000},
			"rows": [{"address": "0x1234567890abcdef1234567890abcdef12345678"}]
		}
	}`)

	mockHTTP.
		EXPECT().
		GetBytes(
			gomock.Any(),
			"https://analytics.example.com/api/v1/query/42/results?limit=1&offset=0",
			map[string]string{"X-Dune-Api-Key": testAPIKey},
		).
		Return(body, nil)

	result, err := client.LatestQueryResults(context.Background(), 42, 1, 0)

	assert.NoError(t, err)
	assert.Equal(t, "01JD3", result.ExecutionID)
	assert.Equal(t, int64(42), result.QueryID)
	assert.True(t, result.IsExecutionFinished)
	assert.Equal(t, int64(25000), result.Result.Metadata.TotalRowCount)
	assert.Len(t, result.Result.Rows, 1)
}

func TestLatestQueryResults_HTTPError(t *testing.T) {
	mockHTTP, client := newTestClient(t)

	mockHTTP.
		EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("upstream unavailable"))

	result, err := client.LatestQueryResults(context.Background(), 42, 1, 0)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "query 42")
}

func TestLatestQueryResults_MalformedBody(t *testing.T) {
	mockHTTP, client := newTestClient(t)

	mockHTTP.
		EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte("not json"), nil)

	result, err := client.LatestQueryResults(context.Background(), 42, 1, 0)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestExecuteQuery(t *testing.T) {
	mockHTTP, client := newTestClient(t)

	mockHTTP.
		EXPECT().
		PostBytes(
			gomock.Any(),
			"https://analytics.example.com/api/v1/query/7/execute",
			map[string]string{"X-Dune-Api-Key": testAPIKey},
			nil,
		).
		Return([]byte(`{"execution_id": "01JD4", "state": "QUERY_STATE_PENDING"}`), nil)

	result, err := client.ExecuteQuery(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, "01JD4", result.ExecutionID)
	assert.Equal(t, "QUERY_STATE_PENDING", result.State)
}

func TestGetExecutionResults(t *testing.T) {
	mockHTTP, client := newTestClient(t)

	body := []byte(`{
		"execution_id": "01JD3",
		"result": {
			"metadata": {"row_count": 10000, "total_row_count": 25000},
			"rows": []
		}
	}`)

	mockHTTP.
		EXPECT().
		GetBytes(
			gomock.Any(),
			"https://analytics.example.com/api/v1/execution/01JD3/results?limit=10000&offset=10000",
			map[string]string{"X-Dune-Api-Key": testAPIKey},
		).
		Return(body, nil)

	result, err := client.GetExecutionResults(context.Background(), "01JD3", 10000, 10000)

	assert.NoError(t, err)
	assert.Equal(t, "01JD3", result.ExecutionID)
	assert.Equal(t, int64(10000), result.Result.Metadata.RowCount)
}
