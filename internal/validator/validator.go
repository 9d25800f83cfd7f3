package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Fields returns the names of the failing fields in order
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, e.Field)
	}
	return fields
}

// Has reports whether the given field failed
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Validator wraps go-playground validator with the domain rules registered
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all business rules registered
func New() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates a struct. It returns nil or ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if errs := v.ValidateStruct(s); len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateStruct validates a struct and returns the field errors
func (v *Validator) ValidateStruct(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ToValidationErrors converts go-playground errors into ValidationErrors
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{Field: "body", Message: err.Error(), Rule: "invalid"}}
	}

	result := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return result
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "grade":
		return "must be one of A, B, C, D, E, F, I or empty"
	case "entity_id":
		return "must be a non-empty identifier"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
