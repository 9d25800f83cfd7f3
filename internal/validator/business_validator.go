package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/scms/internal/models"
)

// ValidateStudentInput validates a student create or replace body
func (v *Validator) ValidateStudentInput(in models.StudentInput) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, v.requireTrimmed(map[string]string{
		"regNo": in.RegNo,
		"name":  in.Name,
		"email": in.Email,
	}, []string{"regNo", "name", "email"})...)

	for _, e := range v.ValidateStruct(in) {
		if !errors.Has(e.Field) {
			errors = append(errors, e)
		}
	}

	return errors
}

// ValidateCourseInput validates a course create or replace body
func (v *Validator) ValidateCourseInput(in models.CourseInput) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, v.requireTrimmed(map[string]string{
		"code":  in.Code,
		"title": in.Title,
	}, []string{"code", "title"})...)

	for _, e := range v.ValidateStruct(in) {
		if !errors.Has(e.Field) {
			errors = append(errors, e)
		}
	}

	return errors
}

// ValidateEnrollmentInput validates an enrollment create or replace body
func (v *Validator) ValidateEnrollmentInput(in models.EnrollmentInput) ValidationErrors {
	return v.ValidateStruct(in)
}

// ValidateGrade validates a grade against the fixed grade set
func (v *Validator) ValidateGrade(grade models.Grade) ValidationErrors {
	if grade.IsValid() {
		return nil
	}
	return ValidationErrors{{
		Field:   "grade",
		Message: "must be one of A, B, C, D, E, F, I or empty",
		Value:   grade,
		Rule:    "grade",
	}}
}

// requireTrimmed reports blank values; whitespace-only strings pass the plain required tag
func (v *Validator) requireTrimmed(values map[string]string, order []string) ValidationErrors {
	var errors ValidationErrors
	for _, field := range order {
		if strings.TrimSpace(values[field]) == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: "is required",
				Value:   values[field],
				Rule:    "required",
			})
		}
	}
	return errors
}

// registerBusinessRules registers custom business rule validators
func (v *Validator) registerBusinessRules() {
	// Grade must be in the fixed set; empty means not graded yet
	v.validate.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		return models.Grade(fl.Field().String()).IsValid()
	})

	// Identifiers travel in URL paths, so they cannot be blank or contain separators
	v.validate.RegisterValidation("entity_id", func(fl validator.FieldLevel) bool {
		id := models.NormalizeID(fl.Field().String())
		if id == "" {
			return false
		}
		return !strings.ContainsAny(string(id), "/?#")
	})
}
