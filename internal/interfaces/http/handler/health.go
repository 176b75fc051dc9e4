package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/outsourcing/internal/interfaces/http/dto"
	"github.com/erp/outsourcing/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// Pinger checks the business database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	db Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	router.NewDomainGroup("health", "/health").
		GET("", h.Live).
		GET("/ready", h.Ready).
		RegisterRoutes(rg)
}

// Live godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Pings the business database
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		_ = c.Error(err)
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Database unavailable")
		return
	}
	h.Success(c, gin.H{"status": "ready", "database": "ok"})
}
