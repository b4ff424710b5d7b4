package validation

import (
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/mcp-huiting/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
		// Registration only fails for empty tags or nil funcs.
		_ = validate.RegisterValidation("abspath", func(fl validator.FieldLevel) bool {
			return filepath.IsAbs(fl.Field().String())
		})
	})
	return validate
}

// Struct validates s using its struct tags and returns the failing fields,
// or nil when s is valid.
func Struct(s any) ([]FieldError, error) {
	err := getValidator().Struct(s)
	if err == nil {
		return nil, nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}
	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   e.Field(),
			Message: formatValidationError(e),
		})
	}
	return fieldErrors, nil
}

// Arguments validates decoded tool arguments. Any failure is a
// SCHEMA_VIOLATION naming every offending field.
func Arguments(tool string, args any) error {
	fields, err := Struct(args)
	if err != nil {
		return errors.SchemaViolation(tool, err.Error())
	}
	if len(fields) == 0 {
		return nil
	}
	return errors.SchemaViolation(tool, joinFieldErrors(fields)).WithDetail("fields", fields)
}

// Present reports required arguments that are absent or null. A supplied
// value, even an empty string, passes; struct tags judge its content.
func Present(tool string, args map[string]any, required ...string) error {
	var fields []FieldError
	for _, name := range required {
		if v, ok := args[name]; !ok || v == nil {
			fields = append(fields, FieldError{Field: name, Message: "is required"})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return errors.SchemaViolation(tool, joinFieldErrors(fields)).WithDetail("fields", fields)
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "abspath":
		return "must be an absolute path"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
