package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mento-labs/airdrop-allocator/internal/api/apierrors"
	"github.com/mento-labs/airdrop-allocator/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondServiceUnavailable responds with a service unavailable error
func respondServiceUnavailable(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusServiceUnavailable, apierrors.NewServiceUnavailableError(message, details...))
}

// respondInternalError responds with an internal server error. The underlying
// error is logged, never returned to the caller.
func respondInternalError(c *gin.Context, err error, message string, details ...string) {
	logger.ErrorCtx(c.Request.Context(), err,
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message, details...))
}
