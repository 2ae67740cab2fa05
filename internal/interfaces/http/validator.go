package http

import (
	"github.com/go-playground/validator/v10"
)

// validate instancia compartida; los handlers la usan sobre los DTOs con tags
// `validate`.
var validate = validator.New()

// validateStruct devuelve el primer error de validación, o nil.
func validateStruct(s any) error {
	return validate.Struct(s)
}
