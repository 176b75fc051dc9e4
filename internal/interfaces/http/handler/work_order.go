package handler

import (
	"context"

	appoutsourcing "github.com/erp/outsourcing/internal/application/outsourcing"
	"github.com/erp/outsourcing/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// WorkOrderQueries is the read side the work order handler depends on
type WorkOrderQueries interface {
	ListOutsourcedWorkOrders(ctx context.Context, params appoutsourcing.WorkOrderFilterParams) (*appoutsourcing.WorkOrderListResponse, error)
	GetOutsourcedWorkOrderDetails(ctx context.Context, params appoutsourcing.WorkOrderLookupParams) (*appoutsourcing.WorkOrderDetailDTO, error)
}

// WorkOrderHandler serves outsourced work order queries
type WorkOrderHandler struct {
	BaseHandler
	queries WorkOrderQueries
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(queries WorkOrderQueries) *WorkOrderHandler {
	return &WorkOrderHandler{queries: queries}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *WorkOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	router.NewDomainGroup("outsourcing", "/outsourcing").
		GET("/work-orders", h.ListOutsourcedWorkOrders).
		GET("/work-orders/:id", h.GetOutsourcedWorkOrder).
		RegisterRoutes(rg)
}

// ListOutsourcedWorkOrders godoc
// @Summary      List outsourced work orders
// @Description  Firmed, outsourced work orders with their vendor and linked purchase order, optionally filtered by vendor and transaction date range
// @Tags         outsourcing
// @Produce      json
// @Param        vendorId   query string false "Vendor internal id"
// @Param        startDate  query string false "Earliest work order date (M/D/YYYY or YYYY-MM-DD)"
// @Param        endDate    query string false "Latest work order date (M/D/YYYY or YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=outsourcing.WorkOrderListResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /outsourcing/work-orders [get]
func (h *WorkOrderHandler) ListOutsourcedWorkOrders(c *gin.Context) {
	var params appoutsourcing.WorkOrderFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.queries.ListOutsourcedWorkOrders(c.Request.Context(), params)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetOutsourcedWorkOrder godoc
// @Summary      Get outsourced work order details
// @Description  One work order with its vendor, location and linked purchase order details
// @Tags         outsourcing
// @Produce      json
// @Param        id   path string true "Work order internal id"
// @Success      200 {object} dto.Response{data=outsourcing.WorkOrderDetailDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /outsourcing/work-orders/{id} [get]
func (h *WorkOrderHandler) GetOutsourcedWorkOrder(c *gin.Context) {
	params := appoutsourcing.WorkOrderLookupParams{WorkOrderID: c.Param("id")}

	detail, err := h.queries.GetOutsourcedWorkOrderDetails(c.Request.Context(), params)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}
