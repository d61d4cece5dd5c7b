package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError turns binding failures into a field -> message map.
// It returns nil when err is not a validator error.
func FormatValidationError(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		case "gt":
			out[field] = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		case "gte":
			out[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
		case "lte":
			out[field] = fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
		case "oneof":
			out[field] = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
		case "dive":
			out[field] = fmt.Sprintf("%s has an invalid element", field)
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out
}

// NewValidationError builds a 400 from a binding error, attaching field
// messages when available.
func NewValidationError(err error) *HTTPError {
	httpErr := NewHTTPError(http.StatusBadRequest, "invalid request payload").WithCode("INVALID_INPUT")
	if fields := FormatValidationError(err); fields != nil {
		return httpErr.WithDetails(fields)
	}
	return NewHTTPError(http.StatusBadRequest, err.Error()).WithCode("INVALID_INPUT")
}
