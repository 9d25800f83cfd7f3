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

type courseService struct {
	repo        repositories.Repository
	enrollments EnrollmentService
	logger      *slog.Logger
	validator   *validator.Validator
	confirmer   Confirmer
}

func NewCourseService(repo repositories.Repository, enrollments EnrollmentService, logger *slog.Logger, validator *validator.Validator, confirmer Confirmer) CourseService {
	return &courseService{
		repo:        repo,
		enrollments: enrollments,
		logger:      logger,
		validator:   validator,
		confirmer:   confirmer,
	}
}

func (s *courseService) List(ctx context.Context) (*CourseListView, error) {
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return &CourseListView{Courses: courses}, nil
}

func (s *courseService) Get(ctx context.Context, id models.ID) (*models.Course, error) {
	id = models.NormalizeID(id)
	course, err := s.repo.Course().GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Kind: string(models.KindCourse), ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *courseService) Create(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	in = models.NewCourseInput(in.Code, in.Title, in.Credits).WithDefaults()
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	course, err := s.repo.Course().Create(ctx, in)
	if err != nil {
		s.logger.Error("Failed to create course", "code", in.Code, "error", err)
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "code", course.Code)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id models.ID, in models.CourseInput) (*models.Course, error) {
	id = models.NormalizeID(id)
	if id == "" {
		return nil, NewValidationError("course id is required", nil)
	}

	in = models.NewCourseInput(in.Code, in.Title, in.Credits)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	course, err := s.repo.Course().Replace(ctx, id, in)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Kind: string(models.KindCourse), ID: id}
	}
	if err != nil {
		s.logger.Error("Failed to update course", "course_id", id, "error", err)
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "course_id", id)
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, view *CourseListView, id models.ID) (*CascadeResult, error) {
	if err := confirm(ctx, s.confirmer, PromptDeleteCourse); err != nil {
		return nil, err
	}

	result, err := s.enrollments.DeleteWithCascade(ctx, models.KindCourse, id)
	if err != nil {
		return nil, err
	}

	if view != nil {
		view.Courses = removeByID(view.Courses, result.ParentID, func(c *models.Course) models.ID { return c.ID })
	}
	return result, nil
}

func (s *courseService) validateInput(in models.CourseInput) error {
	errs := s.validator.ValidateCourseInput(in)
	if len(errs) == 0 {
		return nil
	}
	if in.Code == "" || in.Title == "" {
		return NewValidationError(MsgCourseRequired, errs)
	}
	return NewValidationError(errs.Error(), errs)
}
