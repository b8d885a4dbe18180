package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/WebHubMltiplataforma/MarketLocal/pkg/util"
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validationError turns validator output into a client-facing 400.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return apperrors.NewValidationError(fmt.Sprintf("%s is required", field))
		case "min", "max":
			return apperrors.NewValidationError(fmt.Sprintf("%s length is out of range", field))
		case "gte":
			return apperrors.NewValidationError(fmt.Sprintf("%s must not be negative", field))
		case "email":
			return apperrors.NewValidationError("email is not valid")
		case "oneof":
			return apperrors.NewValidationError(fmt.Sprintf("%s has an unsupported value", field))
		}
		return apperrors.NewValidationError(fmt.Sprintf("%s is invalid", field))
	}
	return apperrors.NewValidationError("invalid input")
}
