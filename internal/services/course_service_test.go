package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/validator"
)

func newTestCourseService(t *testing.T, confirmer Confirmer) (CourseService, *countingRepository) {
	t.Helper()
	repo := newCountingRepository(newScenarioStore(t))
	enrollments := newTestEnrollmentService(repo, confirmer)
	return NewCourseService(repo, enrollments, discardLogger(), validator.New(), confirmer), repo
}

func TestCourseService_Create(t *testing.T) {
	svc, _ := newTestCourseService(t, AlwaysConfirm)
	ctx := context.Background()

	course, err := svc.Create(ctx, models.CourseInput{Code: "CS201", Title: "Algorithms"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if course.Credits != models.DefaultCourseCredits {
		t.Errorf("Credits = %d, want default", course.Credits)
	}

	_, err = svc.Create(ctx, models.CourseInput{Code: " ", Title: "Nothing"})
	if !IsValidationError(err) || err.Error() != MsgCourseRequired {
		t.Errorf("expected required message, got %v", err)
	}

	_, err = svc.Create(ctx, models.CourseInput{Code: "CS999", Title: "Too heavy", Credits: 9})
	if !IsValidationError(err) || err.Error() == MsgCourseRequired {
		t.Errorf("expected credits validation error, got %v", err)
	}
}

func TestCourseService_Delete(t *testing.T) {
	confirmer := &recordingConfirmer{answer: true}
	svc, repo := newTestCourseService(t, confirmer)
	ctx := context.Background()

	view, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if _, err := svc.Delete(ctx, view, "3"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(view.Courses) != 3 {
		t.Errorf("expected 3 courses left, got %d", len(view.Courses))
	}
	if confirmer.prompts[0] != PromptDeleteCourse {
		t.Errorf("prompt = %q", confirmer.prompts[0])
	}
	if n := repo.enrollments.deletes.Load(); n != 1 {
		t.Errorf("expected 1 enrollment delete, got %d", n)
	}

	if _, err := svc.Get(ctx, "3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected course gone, got %v", err)
	}
}
