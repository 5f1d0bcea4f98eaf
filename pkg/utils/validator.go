package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"todo-api/domain/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names so envelope errors match the wire format.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors flattens validator errors into per-field messages.
func GetValidationErrors(err error) []models.FieldError {
	var fields []models.FieldError
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.FieldError{{Field: "body", Message: "is invalid"}}
	}
	for _, fe := range validationErrors {
		fields = append(fields, models.FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return "is invalid"
	}
}
