package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/validator"
)

var (
	ErrNotFound         = repositories.ErrNotFound
	ErrConflict         = repositories.ErrConflict
	ErrValidationFailed = errors.New("validation failed")
	ErrAlreadyEnrolled  = errors.New("already enrolled")
	ErrCancelled        = errors.New("cancelled")
)

// ValidationError is a rejected input. Message is what a form shows inline.
type ValidationError struct {
	Message string
	Fields  validator.ValidationErrors
}

func NewValidationError(message string, fields validator.ValidationErrors) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NotFoundError names the missing record
type NotFoundError struct {
	Kind string
	ID   models.ID
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case string(models.KindStudent):
		return MsgStudentNotFound
	case string(models.KindCourse):
		return MsgCourseNotFound
	case "":
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s %s not found.", strings.ToUpper(e.Kind[:1])+e.Kind[1:], e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// CascadeStep is the step of a cascading delete that failed
type CascadeStep string

const (
	StepListEnrollments  CascadeStep = "list enrollments"
	StepDeleteEnrollment CascadeStep = "delete enrollments"
	StepDeleteParent     CascadeStep = "delete parent"
)

// CascadeError reports a cascading delete that stopped part way.
// Deleted enrollments stay deleted.
type CascadeError struct {
	Kind     models.EntityKind
	ParentID models.ID
	Step     CascadeStep
	Deleted  int
	Total    int
	Err      error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("failed to delete %s %s at %s (%d of %d enrollments deleted): %v",
		e.Kind, e.ParentID, e.Step, e.Deleted, e.Total, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
