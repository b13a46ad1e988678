package shared

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct validation tags on the given value.
func Validate(v any) error {
	return validate.Struct(v)
}
