package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appoutsourcing "github.com/erp/outsourcing/internal/application/outsourcing"
	"github.com/erp/outsourcing/internal/domain/outsourcing"
	"github.com/erp/outsourcing/internal/domain/shared"
	"github.com/erp/outsourcing/internal/interfaces/http/dto"
	"github.com/erp/outsourcing/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWorkOrderQueries is a mock implementation of WorkOrderQueries
type MockWorkOrderQueries struct {
	mock.Mock
}

func (m *MockWorkOrderQueries) ListOutsourcedWorkOrders(ctx context.Context, params appoutsourcing.WorkOrderFilterParams) (*appoutsourcing.WorkOrderListResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appoutsourcing.WorkOrderListResponse), args.Error(1)
}

func (m *MockWorkOrderQueries) GetOutsourcedWorkOrderDetails(ctx context.Context, params appoutsourcing.WorkOrderLookupParams) (*appoutsourcing.WorkOrderDetailDTO, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appoutsourcing.WorkOrderDetailDTO), args.Error(1)
}

func str(s string) *string { return &s }

func setupWorkOrderRouter(queries WorkOrderQueries) *gin.Engine {
	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(NewWorkOrderHandler(queries))
	r.Setup()
	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestWorkOrderHandler_ListOutsourcedWorkOrders(t *testing.T) {
	t.Run("returns the list payload", func(t *testing.T) {
		queries := new(MockWorkOrderQueries)
		queries.On("ListOutsourcedWorkOrders", mock.Anything, appoutsourcing.WorkOrderFilterParams{}).
			Return(&appoutsourcing.WorkOrderListResponse{
				TotalCount:             1,
				TotalOutsourcingCharge: "500.00",
				WorkOrders: []appoutsourcing.WorkOrderSummaryDTO{{
					WorkOrderID:       "16306",
					WorkOrderNumber:   str("WO1001"),
					IsFirmed:          true,
					IsOutsourced:      true,
					OutsourcingCharge: str("500.00"),
					WorkOrderURL:      "/app/accounting/transactions/workord.nl?id=16306",
				}},
			}, nil)

		w := get(setupWorkOrderRouter(queries), "/api/v1/outsourcing/work-orders")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(1), data["totalCount"])
		assert.Equal(t, "500.00", data["totalOutsourcingCharge"])

		orders := data["workOrders"].([]interface{})
		require.Len(t, orders, 1)
		first := orders[0].(map[string]interface{})
		assert.Equal(t, "16306", first["workOrderId"])
		assert.Equal(t, true, first["isFirmed"])
		assert.Contains(t, first, "purchaseOrderUrl")
		assert.Nil(t, first["purchaseOrderUrl"])
		queries.AssertExpectations(t)
	})

	t.Run("binds filter query parameters", func(t *testing.T) {
		queries := new(MockWorkOrderQueries)
		want := appoutsourcing.WorkOrderFilterParams{VendorID: "501", StartDate: "10/1/2025", EndDate: "2025-10-31"}
		queries.On("ListOutsourcedWorkOrders", mock.Anything, want).
			Return(&appoutsourcing.WorkOrderListResponse{TotalOutsourcingCharge: "0.00", WorkOrders: []appoutsourcing.WorkOrderSummaryDTO{}}, nil)

		w := get(setupWorkOrderRouter(queries), "/api/v1/outsourcing/work-orders?vendorId=501&startDate=10/1/2025&endDate=2025-10-31")

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, float64(0), data["totalCount"])
		assert.Empty(t, data["workOrders"])
		queries.AssertExpectations(t)
	})

	t.Run("maps validation errors to 400", func(t *testing.T) {
		queries := new(MockWorkOrderQueries)
		queries.On("ListOutsourcedWorkOrders", mock.Anything, mock.Anything).
			Return(nil, shared.NewValidationError("startDate: Must be a date in M/D/YYYY or YYYY-MM-DD format"))

		w := get(setupWorkOrderRouter(queries), "/api/v1/outsourcing/work-orders?startDate=yesterday")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("lists rejected fields in the error details", func(t *testing.T) {
		var calls int
		executor := outsourcing.QueryExecutorFunc(func(ctx context.Context, query string, params ...any) (*outsourcing.ResultSet, error) {
			calls++
			return outsourcing.NewResultSet(nil, nil), nil
		})
		engine := setupWorkOrderRouter(appoutsourcing.NewWorkOrderQueryService(executor, nil))

		w := get(engine, "/api/v1/outsourcing/work-orders?vendorId=V-622")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "vendorId: Must be a numeric id", resp.Error.Message)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "vendorId", resp.Error.Details[0].Field)
		assert.Equal(t, "Must be a numeric id", resp.Error.Details[0].Message)
		assert.Zero(t, calls)
	})

	t.Run("maps query failures to 502", func(t *testing.T) {
		queries := new(MockWorkOrderQueries)
		queries.On("ListOutsourcedWorkOrders", mock.Anything, mock.Anything).
			Return(nil, shared.NewUpstreamQueryError(errors.New("query timed out")))

		w := get(setupWorkOrderRouter(queries), "/api/v1/outsourcing/work-orders")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeUpstreamQuery, resp.Error.Code)
		assert.Equal(t, "query timed out", resp.Error.Message)
	})
}

func TestWorkOrderHandler_GetOutsourcedWorkOrder(t *testing.T) {
	t.Run("returns the detail payload", func(t *testing.T) {
		queries := new(MockWorkOrderQueries)
		detail := &appoutsourcing.WorkOrderDetailDTO{
			WorkOrderSummaryDTO: appoutsourcing.WorkOrderSummaryDTO{
				WorkOrderID:  "16306",
				IsFirmed:     true,
				IsOutsourced: true,
				WorkOrderURL: "/app/accounting/transactions/workord.nl?id=16306",
			},
			VendorEmail:   str("orders@acme.example"),
			LinkedPOTotal: str("7500.00"),
		}
		queries.On("GetOutsourcedWorkOrderDetails", mock.Anything, appoutsourcing.WorkOrderLookupParams{WorkOrderID: "16306"}).
			Return(detail, nil)

		w := get(setupWorkOrderRouter(queries), "/api/v1/outsourcing/work-orders/16306")

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, "16306", data["workOrderId"])
		assert.Equal(t, "orders@acme.example", data["vendorEmail"])
		assert.Equal(t, "7500.00", data["linkedPOTotal"])
		assert.Contains(t, data, "locationName")
		queries.AssertExpectations(t)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		queries := new(MockWorkOrderQueries)
		queries.On("GetOutsourcedWorkOrderDetails", mock.Anything, appoutsourcing.WorkOrderLookupParams{WorkOrderID: "99999"}).
			Return(nil, shared.NewNotFoundError("No Work Order found with id %s", "99999"))

		w := get(setupWorkOrderRouter(queries), "/api/v1/outsourcing/work-orders/99999")

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "No Work Order found with id 99999", resp.Error.Message)
	})

	t.Run("maps duplicate rows to 500", func(t *testing.T) {
		queries := new(MockWorkOrderQueries)
		queries.On("GetOutsourcedWorkOrderDetails", mock.Anything, mock.Anything).
			Return(nil, shared.NewDataIntegrityError("Multiple Work Orders found with id %s", "16306"))

		w := get(setupWorkOrderRouter(queries), "/api/v1/outsourcing/work-orders/16306")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeDataIntegrity, decodeResponse(t, w).Error.Code)
	})
}

// The real service behind the handler: validation short-circuits before any
// query, and executor failures surface as 502.
func TestWorkOrderHandler_WithService(t *testing.T) {
	var calls int
	executor := outsourcing.QueryExecutorFunc(func(ctx context.Context, query string, params ...any) (*outsourcing.ResultSet, error) {
		calls++
		return nil, errors.New("relation \"transaction\" does not exist")
	})
	engine := setupWorkOrderRouter(appoutsourcing.NewWorkOrderQueryService(executor, nil))

	w := get(engine, "/api/v1/outsourcing/work-orders/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	assert.Zero(t, calls)

	w = get(engine, "/api/v1/outsourcing/work-orders?vendorId=501")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeUpstreamQuery, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "does not exist")
	assert.Equal(t, 1, calls)
}
