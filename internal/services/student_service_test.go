package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/validator"
)

func newTestStudentService(t *testing.T, confirmer Confirmer) (StudentService, *countingRepository) {
	t.Helper()
	repo := newCountingRepository(newScenarioStore(t))
	enrollments := newTestEnrollmentService(repo, confirmer)
	return NewStudentService(repo, enrollments, discardLogger(), validator.New(), confirmer), repo
}

func TestStudentService_Create(t *testing.T) {
	svc, _ := newTestStudentService(t, AlwaysConfirm)
	ctx := context.Background()

	tests := []struct {
		name        string
		input       models.StudentInput
		wantErr     bool
		wantMessage string
	}{
		{
			name:  "valid with default year",
			input: models.StudentInput{RegNo: " R-100 ", Name: "Grace Hopper", Email: "grace@uni.edu"},
		},
		{
			name:        "blank name",
			input:       models.StudentInput{RegNo: "R-101", Name: "   ", Email: "x@uni.edu"},
			wantErr:     true,
			wantMessage: MsgStudentRequired,
		},
		{
			name:        "missing email",
			input:       models.StudentInput{RegNo: "R-102", Name: "Barbara"},
			wantErr:     true,
			wantMessage: MsgStudentRequired,
		},
		{
			name:    "malformed email",
			input:   models.StudentInput{RegNo: "R-103", Name: "Edsger", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "year out of range",
			input:   models.StudentInput{RegNo: "R-104", Name: "Donald", Email: "don@uni.edu", Year: 7},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Create(ctx, tt.input)
			if tt.wantErr {
				if !IsValidationError(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if tt.wantMessage != "" && err.Error() != tt.wantMessage {
					t.Errorf("message = %q, want %q", err.Error(), tt.wantMessage)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if got.ID == "" || got.RegNo != "R-100" || got.Year != models.DefaultStudentYear {
				t.Errorf("unexpected student %+v", got)
			}
		})
	}
}

func TestStudentService_Update(t *testing.T) {
	svc, _ := newTestStudentService(t, AlwaysConfirm)
	ctx := context.Background()

	updated, err := svc.Update(ctx, "2", models.StudentInput{RegNo: "R-002", Name: "Alan M. Turing", Email: "alan@uni.edu", Year: 4})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != "2" || updated.Name != "Alan M. Turing" || updated.Year != 4 {
		t.Errorf("unexpected student %+v", updated)
	}

	_, err = svc.Update(ctx, "404", models.StudentInput{RegNo: "R", Name: "N", Email: "n@uni.edu", Year: 1})
	if !errors.Is(err, ErrNotFound) || err.Error() != MsgStudentNotFound {
		t.Errorf("expected not found, got %v", err)
	}

	// the new-student year default does not apply to edits
	_, err = svc.Update(ctx, "2", models.StudentInput{RegNo: "R-002", Name: "Alan", Email: "alan@uni.edu"})
	if !IsValidationError(err) {
		t.Errorf("expected validation error for year 0, got %v", err)
	}
}

func TestStudentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("declined", func(t *testing.T) {
		confirmer := &recordingConfirmer{answer: false}
		svc, repo := newTestStudentService(t, confirmer)
		view, _ := svc.List(ctx)

		if _, err := svc.Delete(ctx, view, "1"); !errors.Is(err, ErrCancelled) {
			t.Fatalf("expected ErrCancelled, got %v", err)
		}
		if len(view.Students) != 2 || repo.enrollments.deletes.Load() != 0 {
			t.Error("declined delete must not touch anything")
		}
		if confirmer.prompts[0] != PromptDeleteStudent {
			t.Errorf("prompt = %q", confirmer.prompts[0])
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		svc, _ := newTestStudentService(t, AlwaysConfirm)
		view, _ := svc.List(ctx)

		result, err := svc.Delete(ctx, view, "1")
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if result.EnrollmentsDeleted != 2 {
			t.Errorf("expected 2 enrollments deleted, got %d", result.EnrollmentsDeleted)
		}
		if len(view.Students) != 1 || view.Students[0].ID != "2" {
			t.Errorf("listing not updated: %+v", view.Students)
		}
	})

	t.Run("cascade failure keeps the listing", func(t *testing.T) {
		svc, repo := newTestStudentService(t, AlwaysConfirm)
		repo.enrollments.failDelete["e1"] = errors.New("timeout")
		view, _ := svc.List(ctx)

		_, err := svc.Delete(ctx, view, "1")
		var cascadeErr *CascadeError
		if !errors.As(err, &cascadeErr) {
			t.Fatalf("expected CascadeError, got %v", err)
		}
		if len(view.Students) != 2 {
			t.Error("listing must stay untouched on failure")
		}
	})
}

func TestStudentListView_Empty(t *testing.T) {
	if !(&StudentListView{}).Empty() {
		t.Error("empty listing should report Empty")
	}
	if (&StudentListView{Students: []*models.Student{{ID: "1"}}}).Empty() {
		t.Error("non-empty listing reported Empty")
	}
}
