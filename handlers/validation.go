package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names, matching the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput returns a field → messages map, or nil when the input passes.
func validateInput(input interface{}) map[string][]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return map[string][]string{"_request": {err.Error()}}
	}

	out := make(map[string][]string, len(vErrs))
	for _, fe := range vErrs {
		out[fe.Field()] = append(out[fe.Field()], validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", fe.Field())
	case "email":
		return fmt.Sprintf("the %s field must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("the %s field is invalid", fe.Field())
	}
}
