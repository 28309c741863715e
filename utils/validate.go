package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs validator tags over a request DTO.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
