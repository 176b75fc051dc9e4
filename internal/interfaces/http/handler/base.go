package handler

import (
	"errors"
	"net/http"

	"github.com/erp/outsourcing/internal/domain/shared"
	"github.com/erp/outsourcing/internal/infrastructure/logger"
	"github.com/erp/outsourcing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey is the request ID header
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID prefers the ID set by the RequestID middleware over the raw header
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.RequestIDContextKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

// Success sends a 200 response wrapping data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 listing each rejected field
func (h *BaseHandler) ValidationError(c *gin.Context, err *shared.DomainError) {
	details := make([]dto.ValidationDetail, 0, len(err.Fields))
	for _, f := range err.Fields {
		details = append(details, dto.ValidationDetail{Field: f.Field, Message: f.Message})
	}
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err.Message, getRequestID(c), details))
}

// HandleError maps domain errors to their status and code. Anything else is
// logged and reported as a generic 500 so driver details do not leak.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == shared.CodeUpstreamQuery || domainErr.Code == shared.CodeDataIntegrity {
			_ = c.Error(err)
		}
		if len(domainErr.Fields) > 0 {
			h.ValidationError(c, domainErr)
			return
		}
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled handler error", zap.Error(err))
	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}
