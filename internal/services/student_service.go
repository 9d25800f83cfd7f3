package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/validator"
)

type studentService struct {
	repo        repositories.Repository
	enrollments EnrollmentService
	logger      *slog.Logger
	validator   *validator.Validator
	confirmer   Confirmer
}

func NewStudentService(repo repositories.Repository, enrollments EnrollmentService, logger *slog.Logger, validator *validator.Validator, confirmer Confirmer) StudentService {
	return &studentService{
		repo:        repo,
		enrollments: enrollments,
		logger:      logger,
		validator:   validator,
		confirmer:   confirmer,
	}
}

func (s *studentService) List(ctx context.Context) (*StudentListView, error) {
	students, err := s.repo.Student().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return &StudentListView{Students: students}, nil
}

func (s *studentService) Get(ctx context.Context, id models.ID) (*models.Student, error) {
	id = models.NormalizeID(id)
	student, err := s.repo.Student().GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Kind: string(models.KindStudent), ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) Create(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	in = models.NewStudentInput(in.RegNo, in.Name, in.Email, in.Year).WithDefaults()
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().Create(ctx, in)
	if err != nil {
		s.logger.Error("Failed to create student", "reg_no", in.RegNo, "error", err)
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("Student created", "student_id", student.ID, "reg_no", student.RegNo)
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id models.ID, in models.StudentInput) (*models.Student, error) {
	id = models.NormalizeID(id)
	if id == "" {
		return nil, NewValidationError("student id is required", nil)
	}

	in = models.NewStudentInput(in.RegNo, in.Name, in.Email, in.Year)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().Replace(ctx, id, in)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Kind: string(models.KindStudent), ID: id}
	}
	if err != nil {
		s.logger.Error("Failed to update student", "student_id", id, "error", err)
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.logger.Info("Student updated", "student_id", id)
	return student, nil
}

// Delete asks for confirmation, cascades and then drops the student from the listing
func (s *studentService) Delete(ctx context.Context, view *StudentListView, id models.ID) (*CascadeResult, error) {
	if err := confirm(ctx, s.confirmer, PromptDeleteStudent); err != nil {
		return nil, err
	}

	result, err := s.enrollments.DeleteWithCascade(ctx, models.KindStudent, id)
	if err != nil {
		return nil, err
	}

	if view != nil {
		view.Students = removeByID(view.Students, result.ParentID, func(st *models.Student) models.ID { return st.ID })
	}
	return result, nil
}

// validateInput reports blank required fields with the form message, other failures field by field
func (s *studentService) validateInput(in models.StudentInput) error {
	errs := s.validator.ValidateStudentInput(in)
	if len(errs) == 0 {
		return nil
	}
	if in.RegNo == "" || in.Name == "" || in.Email == "" {
		return NewValidationError(MsgStudentRequired, errs)
	}
	return NewValidationError(errs.Error(), errs)
}

func removeByID[T any](items []T, id models.ID, idOf func(T) models.ID) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if !idOf(item).Equal(id) {
			kept = append(kept, item)
		}
	}
	return kept
}
