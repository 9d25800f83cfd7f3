package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/scms/internal/events"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/validator"
)

type recordService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

// NewRecordService builds the store-side service. publisher may be nil.
func NewRecordService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) RecordService {
	return &recordService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== STUDENTS =====

func (s *recordService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.Student().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *recordService) GetStudent(ctx context.Context, id models.ID) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// CreateStudent stores a new student. A client-supplied id is kept if unused.
func (s *recordService) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	in := models.NewStudentInput(student.RegNo, student.Name, student.Email, student.Year)
	if errs := s.validator.ValidateStudentInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}

	var (
		created *models.Student
		err     error
	)
	if id := models.NormalizeID(student.ID); id != "" {
		record := in.Record(id)
		created, err = s.repo.Student().Insert(ctx, &record)
	} else {
		created, err = s.repo.Student().Create(ctx, in)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.publish(ctx, events.StudentCreated, created.ID, created)
	return created, nil
}

func (s *recordService) ReplaceStudent(ctx context.Context, id models.ID, in models.StudentInput) (*models.Student, error) {
	in = models.NewStudentInput(in.RegNo, in.Name, in.Email, in.Year)
	if errs := s.validator.ValidateStudentInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}

	updated, err := s.repo.Student().Replace(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to replace student: %w", err)
	}

	s.publish(ctx, events.StudentUpdated, updated.ID, updated)
	return updated, nil
}

// DeleteStudent removes only the student; its enrollments are the caller's concern
func (s *recordService) DeleteStudent(ctx context.Context, id models.ID) error {
	if err := s.repo.Student().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.publish(ctx, events.StudentDeleted, id, nil)
	return nil
}

// ===== COURSES =====

func (s *recordService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *recordService) GetCourse(ctx context.Context, id models.ID) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *recordService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	in := models.NewCourseInput(course.Code, course.Title, course.Credits)
	if errs := s.validator.ValidateCourseInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}

	var (
		created *models.Course
		err     error
	)
	if id := models.NormalizeID(course.ID); id != "" {
		record := in.Record(id)
		created, err = s.repo.Course().Insert(ctx, &record)
	} else {
		created, err = s.repo.Course().Create(ctx, in)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.publish(ctx, events.CourseCreated, created.ID, created)
	return created, nil
}

func (s *recordService) ReplaceCourse(ctx context.Context, id models.ID, in models.CourseInput) (*models.Course, error) {
	in = models.NewCourseInput(in.Code, in.Title, in.Credits)
	if errs := s.validator.ValidateCourseInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}

	updated, err := s.repo.Course().Replace(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to replace course: %w", err)
	}

	s.publish(ctx, events.CourseUpdated, updated.ID, updated)
	return updated, nil
}

func (s *recordService) DeleteCourse(ctx context.Context, id models.ID) error {
	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.publish(ctx, events.CourseDeleted, id, nil)
	return nil
}

// ===== ENROLLMENTS =====

func (s *recordService) ListEnrollments(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	enrollments, err := s.repo.Enrollment().List(ctx, filters.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *recordService) GetEnrollment(ctx context.Context, id models.ID) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollment().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

// CreateEnrollment stores an enrollment. Pair uniqueness and references are not checked here.
func (s *recordService) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	in := models.NewEnrollmentInput(enrollment.StudentID, enrollment.CourseID, enrollment.Grade)
	if errs := s.validator.ValidateEnrollmentInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}

	var (
		created *models.Enrollment
		err     error
	)
	if id := models.NormalizeID(enrollment.ID); id != "" {
		record := in.Record(id)
		created, err = s.repo.Enrollment().Insert(ctx, &record)
	} else {
		created, err = s.repo.Enrollment().Create(ctx, in)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.publish(ctx, events.EnrollmentCreated, created.ID, created)
	return created, nil
}

func (s *recordService) ReplaceEnrollment(ctx context.Context, id models.ID, in models.EnrollmentInput) (*models.Enrollment, error) {
	in = models.NewEnrollmentInput(in.StudentID, in.CourseID, in.Grade)
	if errs := s.validator.ValidateEnrollmentInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}

	previous, err := s.repo.Enrollment().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	updated, err := s.repo.Enrollment().Replace(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to replace enrollment: %w", err)
	}

	eventType := events.EnrollmentUpdated
	if previous.StudentID.Equal(in.StudentID) && previous.CourseID.Equal(in.CourseID) && previous.Grade != in.Grade {
		eventType = events.EnrollmentGradeUpdated
	}
	s.publish(ctx, eventType, updated.ID, updated)
	return updated, nil
}

func (s *recordService) DeleteEnrollment(ctx context.Context, id models.ID) error {
	if err := s.repo.Enrollment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	s.publish(ctx, events.EnrollmentDeleted, id, nil)
	return nil
}

// publish emits a change event. A failed publish is logged; the write already happened.
func (s *recordService) publish(ctx context.Context, eventType events.EventType, id models.ID, record interface{}) {
	if s.publisher == nil {
		return
	}

	change := events.RecordChange{ID: models.NormalizeID(id).String()}
	if record != nil {
		change.Record = record
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, change)); err != nil {
		s.logger.Warn("Failed to publish change event", "event_type", eventType, "id", id, "error", err)
	}
}
