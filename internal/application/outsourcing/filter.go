package outsourcing

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/erp/outsourcing/internal/domain/outsourcing"
	"github.com/erp/outsourcing/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

// Accepted filter date layouts. The host UI sends M/D/YYYY, API clients send ISO dates.
var filterDateLayouts = []string{"1/2/2006", time.DateOnly}

var filterValidator = newFilterValidator()

func newFilterValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("hostdate", func(fl validator.FieldLevel) bool {
		_, err := parseFilterDate(fl.Field().String())
		return err == nil
	})
	return v
}

func parseFilterDate(value string) (time.Time, error) {
	for _, layout := range filterDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// normalize trims surrounding whitespace from every field
func (p WorkOrderFilterParams) normalize() WorkOrderFilterParams {
	return WorkOrderFilterParams{
		VendorID:  strings.TrimSpace(p.VendorID),
		StartDate: strings.TrimSpace(p.StartDate),
		EndDate:   strings.TrimSpace(p.EndDate),
	}
}

// ToDomainFilter validates the request and converts it into a domain filter.
// Failures are returned as a VALIDATION_ERROR domain error.
func (p WorkOrderFilterParams) ToDomainFilter() (outsourcing.WorkOrderFilter, error) {
	p = p.normalize()

	if err := filterValidator.Struct(p); err != nil {
		return outsourcing.WorkOrderFilter{}, toValidationError(err)
	}

	var filter outsourcing.WorkOrderFilter
	if p.VendorID != "" {
		vendorID := p.VendorID
		filter.VendorID = &vendorID
	}
	if p.StartDate != "" {
		// Already validated by the hostdate tag
		start, _ := parseFilterDate(p.StartDate)
		filter.StartDate = &start
	}
	if p.EndDate != "" {
		end, _ := parseFilterDate(p.EndDate)
		filter.EndDate = &end
	}

	if err := filter.Validate(); err != nil {
		return outsourcing.WorkOrderFilter{}, shared.NewValidationError(err.Error())
	}
	return filter, nil
}

// toValidationError keeps one FieldError per rejected field and joins them
// into the message.
func toValidationError(err error) *shared.DomainError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return shared.NewValidationError(err.Error())
	}
	fields := make([]shared.FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fe := shared.FieldError{Field: e.Field(), Message: validationMessage(e)}
		fields = append(fields, fe)
		messages = append(messages, fe.Field+": "+fe.Message)
	}
	return shared.NewFieldValidationError(strings.Join(messages, "; "), fields)
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "number":
		return "Must be a numeric id"
	case "max":
		return "Must be at most " + e.Param() + " characters"
	case "hostdate":
		return "Must be a date in M/D/YYYY or YYYY-MM-DD format"
	default:
		return "Invalid value"
	}
}
