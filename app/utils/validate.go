package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct runs the shared validator over a request body.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
