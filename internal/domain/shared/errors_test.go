package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	t.Run("message is the error text", func(t *testing.T) {
		err := NewValidationError("Missing work order ID")
		assert.Equal(t, "Missing work order ID", err.Error())
		assert.Equal(t, CodeValidation, err.Code)
	})

	t.Run("formats not found and data integrity messages", func(t *testing.T) {
		assert.Equal(t, "No Work Order found with id 99999",
			NewNotFoundError("No Work Order found with id %s", "99999").Message)
		assert.Equal(t, "Multiple Work Orders found with id 16306",
			NewDataIntegrityError("Multiple Work Orders found with id %s", "16306").Message)
	})

	t.Run("field validation error keeps each field", func(t *testing.T) {
		fields := []FieldError{{Field: "vendorId", Message: "Must be a numeric id"}}
		err := NewFieldValidationError("vendorId: Must be a numeric id", fields)

		assert.Equal(t, CodeValidation, err.Code)
		assert.Equal(t, fields, err.Fields)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, NewValidationError("Missing work order ID").Fields)
	})

	t.Run("upstream error keeps the cause reachable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewUpstreamQueryError(fmt.Errorf("execute query: %w", cause))

		assert.Equal(t, "execute query: connection refused", err.Message)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrUpstreamQuery)
	})

	t.Run("errors.Is matches by code through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("lookup: %w", NewNotFoundError("No Work Order found with id %s", "1"))

		assert.ErrorIs(t, wrapped, ErrNotFound)
		assert.NotErrorIs(t, wrapped, ErrValidation)

		var domainErr *DomainError
		require.ErrorAs(t, wrapped, &domainErr)
		assert.Equal(t, CodeNotFound, domainErr.Code)
	})
}
