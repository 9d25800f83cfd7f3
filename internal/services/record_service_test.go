package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/scms/internal/events"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/validator"
)

func newTestRecordService(t *testing.T) (RecordService, *events.MockEventPublisher) {
	t.Helper()
	publisher := events.NewMockEventPublisher(discardLogger())
	return NewRecordService(newScenarioStore(t), publisher, discardLogger(), validator.New()), publisher
}

func TestRecordService_CreateStudent(t *testing.T) {
	svc, publisher := newTestRecordService(t)
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &models.Student{RegNo: "R-300", Name: "Radia", Email: "radia@uni.edu", Year: 1})
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	if created.ID == "" {
		t.Error("store should assign an id")
	}

	withID, err := svc.CreateStudent(ctx, &models.Student{ID: "42", RegNo: "R-301", Name: "Ken", Email: "ken@uni.edu", Year: 2})
	if err != nil {
		t.Fatalf("CreateStudent with id failed: %v", err)
	}
	if withID.ID != "42" {
		t.Errorf("client id not kept: %q", withID.ID)
	}

	_, err = svc.CreateStudent(ctx, &models.Student{ID: "42", RegNo: "R-302", Name: "Dup", Email: "dup@uni.edu", Year: 1})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	_, err = svc.CreateStudent(ctx, &models.Student{Name: "No reg"})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 || published[0].Type != events.StudentCreated {
		t.Fatalf("unexpected events %+v", published)
	}
	change, ok := published[1].Data.(events.RecordChange)
	if !ok || change.ID != "42" {
		t.Errorf("unexpected payload %+v", published[1].Data)
	}
}

func TestRecordService_ReplaceEnrollmentEvents(t *testing.T) {
	svc, publisher := newTestRecordService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input models.EnrollmentInput
		want  events.EventType
	}{
		{name: "grade only", input: models.NewEnrollmentInput("1", "1", models.GradeA), want: events.EnrollmentGradeUpdated},
		{name: "moved course", input: models.NewEnrollmentInput("1", "4", models.GradeA), want: events.EnrollmentUpdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher.ClearEvents()

			if _, err := svc.ReplaceEnrollment(ctx, "e1", tt.input); err != nil {
				t.Fatalf("ReplaceEnrollment failed: %v", err)
			}
			published := publisher.GetPublishedEvents()
			if len(published) != 1 || published[0].Type != tt.want {
				t.Errorf("events = %+v, want one %s", published, tt.want)
			}
		})
	}

	_, err := svc.ReplaceEnrollment(ctx, "nope", models.NewEnrollmentInput("1", "1", ""))
	if !repositories.IsNotFoundError(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestRecordService_ListEnrollmentsFilters(t *testing.T) {
	svc, _ := newTestRecordService(t)

	got, err := svc.ListEnrollments(context.Background(), repositories.EnrollmentFilters{StudentID: " 1"})
	if err != nil {
		t.Fatalf("ListEnrollments failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 enrollments of student 1, got %d", len(got))
	}
}

func TestRecordService_PublishFailureDoesNotFailWrite(t *testing.T) {
	svc, publisher := newTestRecordService(t)
	publisher.FailWith(errors.New("broker down"))

	if err := svc.DeleteCourse(context.Background(), "4"); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
	if _, err := svc.GetCourse(context.Background(), "4"); !errors.Is(err, ErrNotFound) {
		t.Errorf("course should be deleted, got %v", err)
	}
}
