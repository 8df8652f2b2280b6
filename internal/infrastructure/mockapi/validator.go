package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hireboard/job-portal/internal/core/domain"
)

// requestValidator wraps go-playground/validator and renders failures as a
// single human-readable message.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{v: validator.New()}
}

// decode unmarshals body into dst and validates it. Failures are 400s.
func (rv *requestValidator) decode(body []byte, dst any) error {
	if len(body) == 0 {
		return domain.NewAPIError(http.StatusBadRequest, "request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewAPIError(http.StatusBadRequest, "invalid payload")
	}
	if err := rv.validate(dst); err != nil {
		return domain.NewAPIError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func (rv *requestValidator) validate(i any) error {
	if err := rv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
