package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var sortOrderRgx = regexp.MustCompile(`^[a-zA-Z]+_(ASC|DESC)$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("sortorder", validateSortOrder)

	return validator
}

// validateSortOrder checks the shape of a "column_DIRECTION" sort token.
// Whether the column is actually sortable is decided against the entity's
// whitelist when the order is parsed.
func validateSortOrder(fl validator.FieldLevel) bool {
	return sortOrderRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "unique":
		return "must not contain duplicate values"
	case "sortorder":
		return "must look like column_ASC or column_DESC"
	default:
		return "is invalid"
	}
}
