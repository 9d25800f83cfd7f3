package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/validator"
)

// EnrollmentServiceConfig tunes the enrollment service.
// CascadeConcurrency bounds the parallel enrollment deletes of a cascade; 0 means unbounded.
type EnrollmentServiceConfig struct {
	CascadeConcurrency int
}

type enrollmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	confirmer Confirmer
	config    EnrollmentServiceConfig
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, confirmer Confirmer, config EnrollmentServiceConfig) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		confirmer: confirmer,
		config:    config,
	}
}

// ===== DETAIL VIEWS =====

func (s *enrollmentService) LoadStudentDetail(ctx context.Context, studentID models.ID) (*DetailView, error) {
	return s.loadDetail(ctx, ModeByStudent, studentID)
}

func (s *enrollmentService) LoadCourseDetail(ctx context.Context, courseID models.ID) (*DetailView, error) {
	return s.loadDetail(ctx, ModeByCourse, courseID)
}

// loadDetail reads the subject, the full counterpart list and the subject's enrollments concurrently
func (s *enrollmentService) loadDetail(ctx context.Context, mode Mode, subjectID models.ID) (*DetailView, error) {
	id := models.NormalizeID(subjectID)
	kind := mode.Kind()
	if id == "" {
		return nil, &NotFoundError{Kind: string(kind)}
	}

	s.logger.Info("Loading detail view", "kind", kind, "id", id)

	view := &DetailView{Mode: mode}
	var enrollments []*models.Enrollment

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if mode == ModeByCourse {
			view.Course, err = s.repo.Course().GetByID(gctx, id)
		} else {
			view.Student, err = s.repo.Student().GetByID(gctx, id)
		}
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{Kind: string(kind), ID: id}
		}
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", kind, err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if mode == ModeByCourse {
			view.Students, err = s.repo.Student().List(gctx)
		} else {
			view.Courses, err = s.repo.Course().List(gctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list counterparts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		enrollments, err = s.repo.Enrollment().List(gctx, repositories.ByParent(kind, id))
		if err != nil {
			return fmt.Errorf("failed to list enrollments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load detail view", "kind", kind, "id", id, "error", err)
		return nil, err
	}

	view.Enrollments = normalizeEnrollments(enrollments)
	return view, nil
}

// ===== ENROLL / GRADE / REMOVE =====

func (s *enrollmentService) Enroll(ctx context.Context, view *DetailView, counterpartID models.ID, grade models.Grade) (*models.Enrollment, error) {
	if view == nil || view.SubjectID() == "" {
		return nil, NewValidationError("enrollment subject is unknown", nil)
	}

	counterpartID = models.NormalizeID(counterpartID)
	if counterpartID == "" {
		return nil, NewValidationError(selectMessage(view.Mode), nil)
	}
	if errs := s.validator.ValidateGrade(grade); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}

	if !isEligible(view.Eligible(), counterpartID) {
		if view.hasCounterpart(counterpartID) {
			return nil, fmt.Errorf("%s %s is %w", view.Mode.counterpartKind(), counterpartID, ErrAlreadyEnrolled)
		}
		return nil, NewValidationError(selectMessage(view.Mode), nil)
	}

	studentID, courseID := view.pair(counterpartID)
	input := models.NewEnrollmentInput(studentID, courseID, grade)
	if errs := s.validator.ValidateEnrollmentInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}

	created, err := s.repo.Enrollment().Create(ctx, input)
	if err != nil {
		s.logger.Error("Failed to enroll", "student_id", studentID, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}

	normalized := created.Normalize()
	view.Enrollments = append(view.Enrollments, &normalized)

	s.logger.Info("Enrolled", "enrollment_id", normalized.ID, "student_id", studentID, "course_id", courseID)

	result := normalized
	return &result, nil
}

func (s *enrollmentService) SetGrade(ctx context.Context, view *DetailView, enrollmentID models.ID, grade models.Grade) (*models.Enrollment, error) {
	if errs := s.validator.ValidateGrade(grade); len(errs) > 0 {
		return nil, NewValidationError(errs.Error(), errs)
	}
	if view == nil {
		return nil, NewValidationError("enrollment subject is unknown", nil)
	}

	i, current := view.findEnrollment(enrollmentID)
	if current == nil {
		return nil, &NotFoundError{Kind: "enrollment", ID: models.NormalizeID(enrollmentID)}
	}

	input := models.NewEnrollmentInput(current.StudentID, current.CourseID, grade)
	if _, err := s.repo.Enrollment().Replace(ctx, current.ID, input); err != nil {
		s.logger.Error("Failed to update grade", "enrollment_id", current.ID, "error", err)
		return nil, fmt.Errorf("failed to update grade: %w", err)
	}

	next := *current
	next.Grade = grade
	view.Enrollments[i] = &next

	s.logger.Info("Grade updated", "enrollment_id", next.ID, "grade", grade)

	result := next
	return &result, nil
}

func (s *enrollmentService) Remove(ctx context.Context, view *DetailView, enrollmentID models.ID) error {
	if view == nil {
		return NewValidationError("enrollment subject is unknown", nil)
	}

	_, current := view.findEnrollment(enrollmentID)
	if current == nil {
		return &NotFoundError{Kind: "enrollment", ID: models.NormalizeID(enrollmentID)}
	}

	if err := confirm(ctx, s.confirmer, removePrompt(view.Mode)); err != nil {
		return err
	}

	if err := s.repo.Enrollment().Delete(ctx, current.ID); err != nil {
		s.logger.Error("Failed to remove enrollment", "enrollment_id", current.ID, "error", err)
		return fmt.Errorf("failed to remove enrollment: %w", err)
	}

	view.removeEnrollment(current.ID)
	s.logger.Info("Enrollment removed", "enrollment_id", current.ID)
	return nil
}

// ===== CASCADING DELETE =====

// DeleteWithCascade removes every enrollment of the parent, then the parent.
// Enrollment deletes run concurrently and all of them are awaited; the parent
// is only deleted when every enrollment delete succeeded. An enrollment that is
// already gone counts as deleted.
func (s *enrollmentService) DeleteWithCascade(ctx context.Context, kind models.EntityKind, parentID models.ID) (*CascadeResult, error) {
	if !kind.IsValid() {
		return nil, NewValidationError(fmt.Sprintf("unknown record kind %q", kind), nil)
	}
	id := models.NormalizeID(parentID)
	if id == "" {
		return nil, NewValidationError(fmt.Sprintf("%s id is required", kind), nil)
	}

	s.logger.Info("Deleting with cascade", "kind", kind, "id", id)

	enrollments, err := s.repo.Enrollment().List(ctx, repositories.ByParent(kind, id))
	if err != nil {
		return nil, &CascadeError{Kind: kind, ParentID: id, Step: StepListEnrollments, Err: err}
	}

	var (
		mu      sync.Mutex
		deleted int
		errs    []error
		g       errgroup.Group
	)
	if s.config.CascadeConcurrency > 0 {
		g.SetLimit(s.config.CascadeConcurrency)
	}

	for _, e := range enrollments {
		g.Go(func() error {
			err := s.repo.Enrollment().Delete(ctx, e.ID)

			mu.Lock()
			defer mu.Unlock()
			if err == nil || errors.Is(err, ErrNotFound) {
				deleted++
				return nil
			}
			errs = append(errs, fmt.Errorf("enrollment %s: %w", e.ID, err))
			return nil
		})
	}
	_ = g.Wait()

	total := len(enrollments)
	if len(errs) > 0 {
		s.logger.Error("Cascade stopped before deleting the parent",
			"kind", kind, "id", id, "deleted", deleted, "total", total, "failures", len(errs))
		return nil, &CascadeError{
			Kind:     kind,
			ParentID: id,
			Step:     StepDeleteEnrollment,
			Deleted:  deleted,
			Total:    total,
			Err:      errors.Join(errs...),
		}
	}

	if kind == models.KindCourse {
		err = s.repo.Course().Delete(ctx, id)
	} else {
		err = s.repo.Student().Delete(ctx, id)
	}
	if err != nil {
		s.logger.Error("Failed to delete parent", "kind", kind, "id", id, "error", err)
		return nil, &CascadeError{Kind: kind, ParentID: id, Step: StepDeleteParent, Deleted: deleted, Total: total, Err: err}
	}

	s.logger.Info("Deleted with cascade", "kind", kind, "id", id, "enrollments", deleted)
	return &CascadeResult{Kind: kind, ParentID: id, EnrollmentsDeleted: deleted}, nil
}

// ===== HELPERS =====

func (m Mode) counterpartKind() models.EntityKind {
	if m == ModeByCourse {
		return models.KindStudent
	}
	return models.KindCourse
}

func selectMessage(m Mode) string {
	if m == ModeByCourse {
		return MsgSelectStudent
	}
	return MsgSelectCourse
}

func removePrompt(m Mode) string {
	if m == ModeByCourse {
		return PromptRemoveStudent
	}
	return PromptRemoveCourse
}

func isEligible(options []Counterpart, id models.ID) bool {
	for _, o := range options {
		if o.ID.Equal(id) {
			return true
		}
	}
	return false
}
