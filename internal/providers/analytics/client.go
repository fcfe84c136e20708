package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mento-labs/airdrop-allocator/internal/adapter"
)

const apiKeyHeader = "X-Dune-Api-Key"

// ResultMetadata describes the full result set a page belongs to
type ResultMetadata struct {
	RowCount      int64 `json:"row_count"`
	TotalRowCount int64 `json:"total_row_count"`
}

// QueryResult carries one page of rows plus result-set metadata. Rows are kept
// opaque here; decoding happens at the consumer boundary.
type QueryResult struct {
	Metadata ResultMetadata    `json:"metadata"`
	Rows     []json.RawMessage `json:"rows"`
}

// ResultsResponse is the provider's response for both the latest-results and
// execution-results endpoints
type ResultsResponse struct {
	ExecutionID         string      `json:"execution_id"`
	QueryID             int64       `json:"query_id"`
	State               string      `json:"state"`
	IsExecutionFinished bool        `json:"is_execution_finished"`
	ExecutionStartedAt  time.Time   `json:"execution_started_at"`
	ExecutionEndedAt    time.Time   `json:"execution_ended_at"`
	NextOffset          *int64      `json:"next_offset,omitempty"`
	Result              QueryResult `json:"result"`
}

// ExecuteResponse is the provider's response when triggering a re-execution
type ExecuteResponse struct {
	ExecutionID string `json:"execution_id"`
	State       string `json:"state"`
}

// Client defines the interface for the analytics query provider to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/analytics_client.go -package=mocks -mock_names=Client=MockAnalyticsClient
type Client interface {
	// LatestQueryResults fetches the current state of a named query together
	// with a page of its rows
	LatestQueryResults(ctx context.Context, queryID int64, limit, offset int64) (*ResultsResponse, error)

	// ExecuteQuery triggers an asynchronous re-execution of a query
	ExecuteQuery(ctx context.Context, queryID int64) (*ExecuteResponse, error)

	// GetExecutionResults fetches one page of rows for a known execution
	GetExecutionResults(ctx context.Context, executionID string, limit, offset int64) (*ResultsResponse, error)
}

// DuneClient implements Client against a Dune-compatible HTTP API
type DuneClient struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	apiURL     string
	apiKey     string
}

// NewClient creates a new analytics client
func NewClient(httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, apiURL, apiKey string) Client {
	return &DuneClient{
		httpClient: httpClient,
		json:       jsonAdapter,
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

// LatestQueryResults fetches the current state of a named query
func (c *DuneClient) LatestQueryResults(ctx context.Context, queryID int64, limit, offset int64) (*ResultsResponse, error) {
	url := fmt.Sprintf("%s/v1/query/%d/results?limit=%d&offset=%d", c.apiURL, queryID, limit, offset)

	respBody, err := c.httpClient.GetBytes(ctx, url, c.headers())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest results for query %d: %w", queryID, err)
	}

	var response ResultsResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal latest results for query %d: %w", queryID, err)
	}

	return &response, nil
}

// ExecuteQuery triggers an asynchronous re-execution of a query
func (c *DuneClient) ExecuteQuery(ctx context.Context, queryID int64) (*ExecuteResponse, error) {
	url := fmt.Sprintf("%s/v1/query/%d/execute", c.apiURL, queryID)

	respBody, err := c.httpClient.PostBytes(ctx, url, c.headers(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query %d: %w", queryID, err)
	}

	var response ExecuteResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal execute response for query %d: %w", queryID, err)
	}

	return &response, nil
}

// GetExecutionResults fetches one page of rows for a known execution
func (c *DuneClient) GetExecutionResults(ctx context.Context, executionID string, limit, offset int64) (*ResultsResponse, error) {
	url := fmt.Sprintf("%s/v1/execution/%s/results?limit=%d&offset=%d", c.apiURL, executionID, limit, offset)

	respBody, err := c.httpClient.GetBytes(ctx, url, c.headers())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results for execution %s: %w", executionID, err)
	}

	var response ResultsResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results for execution %s: %w", executionID, err)
	}

	return &response, nil
}

func (c *DuneClient) headers() map[string]string {
	return map[string]string{
		apiKeyHeader: c.apiKey,
	}
}
