package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/logger"
	"github.com/mento-labs/airdrop-allocator/internal/store"
)

// Refresher triggers one run of the refresh orchestration
//
//go:generate mockgen -source=handler.go -destination=../../mocks/refresher.go -package=mocks -mock_names=Refresher=MockRefresher
type Refresher interface {
	Refresh(ctx context.Context) (domain.RefreshOutcome, error)
}

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetAllocation returns the reward of one address under the latest
	// finalized execution
	// GET /api/v1/allocations/:address
	GetAllocation(c *gin.Context)

	// ListExecutions lists known executions, newest first
	// GET /api/v1/executions
	ListExecutions(c *gin.Context)

	// TriggerRefresh runs the refresh orchestration once (requires API key)
	// POST /internal/refresh
	TriggerRefresh(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// RefreshResponse reports the decision taken by a triggered refresh
type RefreshResponse struct {
	Outcome domain.RefreshOutcome `json:"outcome"`
}

// handler implements the Handler interface
type handler struct {
	store     store.Store
	refresher Refresher
}

// NewHandler creates a new REST API handler
func NewHandler(st store.Store, refresher Refresher) Handler {
	return &handler{
		store:     st,
		refresher: refresher,
	}
}

// GetAllocation returns the reward of one address under the latest finalized
// execution. The two not-found cases are distinguished in the error details
// so callers can tell "no data yet" from "address earned nothing".
func (h *handler) GetAllocation(c *gin.Context) {
	address, err := domain.NewAddress(c.Param("address"))
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	latest, err := h.store.GetLatestExecution(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to read latest execution")
		return
	}
	if latest == nil {
		respondNotFound(c, "No allocation data available yet", domain.ErrNoLatestExecution.Error())
		return
	}

	allocation, err := h.store.GetAllocation(c.Request.Context(), latest.ExecutionID, address)
	if err != nil {
		respondInternalError(c, err, "Failed to read allocation")
		return
	}
	if allocation == nil {
		respondNotFound(c, "No allocation for address", domain.ErrNoAllocation.Error())
		return
	}

	c.JSON(http.StatusOK, domain.ComputeReward(address, *allocation, latest.Timestamp))
}

// ListExecutions lists known executions, newest first
func (h *handler) ListExecutions(c *gin.Context) {
	executions, err := h.store.GetExecutions(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list executions")
		return
	}

	if executions == nil {
		executions = []domain.ExecutionRef{}
	}

	c.JSON(http.StatusOK, executions)
}

// TriggerRefresh runs the refresh orchestration once
func (h *handler) TriggerRefresh(c *gin.Context) {
	outcome, err := h.refresher.Refresh(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Refresh failed")
		return
	}

	if outcome != domain.RefreshStarted {
		respondServiceUnavailable(c, "Refresh declined", string(outcome))
		return
	}

	c.JSON(http.StatusAccepted, RefreshResponse{Outcome: outcome})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		logger.Error(err, zap.String("message", "health check failed"))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
