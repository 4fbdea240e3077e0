package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func GetValidator() *validator.Validate {
	return validate
}

// Email checks that addr is a well-formed, non-empty email address.
func Email(addr string) error {
	return validate.Var(addr, "required,email")
}
