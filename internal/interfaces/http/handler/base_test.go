package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/outsourcing/internal/domain/shared"
	"github.com/erp/outsourcing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	t.Run("prefers the context value", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(RequestIDKey, "from-header")
		c.Set("request_id", "from-context")

		assert.Equal(t, "from-context", getRequestID(c))
	})

	t.Run("falls back to the header", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(RequestIDKey, "from-header")

		assert.Equal(t, "from-header", getRequestID(c))
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        shared.NewValidationError("Missing work order ID"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
			wantMsg:    "Missing work order ID",
		},
		{
			name:       "not found",
			err:        shared.NewNotFoundError("No Work Order found with id %s", "99999"),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
			wantMsg:    "No Work Order found with id 99999",
		},
		{
			name:       "upstream query",
			err:        shared.NewUpstreamQueryError(errors.New("connection refused")),
			wantStatus: http.StatusBadGateway,
			wantCode:   dto.ErrCodeUpstreamQuery,
			wantMsg:    "connection refused",
		},
		{
			name:       "data integrity",
			err:        shared.NewDataIntegrityError("Multiple Work Orders found with id %s", "16306"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeDataIntegrity,
			wantMsg:    "Multiple Work Orders found with id 16306",
		},
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("handler: %w", shared.NewValidationError("bad date")),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
			wantMsg:    "bad date",
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("pq: password authentication failed"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
			wantMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set("request_id", "req-1")

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}

	t.Run("field validation errors carry details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("request_id", "req-2")

		err := shared.NewFieldValidationError("endDate: Must be a date in M/D/YYYY or YYYY-MM-DD format",
			[]shared.FieldError{{Field: "endDate", Message: "Must be a date in M/D/YYYY or YYYY-MM-DD format"}})
		(&BaseHandler{}).HandleError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-2", resp.Error.RequestID)
		assert.Equal(t, []dto.ValidationDetail{
			{Field: "endDate", Message: "Must be a date in M/D/YYYY or YYYY-MM-DD format"},
		}, resp.Error.Details)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		(&BaseHandler{}).HandleError(c, nil)
		assert.Zero(t, w.Body.Len())
	})
}

func TestBaseHandler_Success(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	(&BaseHandler{}).Success(c, gin.H{"status": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}
