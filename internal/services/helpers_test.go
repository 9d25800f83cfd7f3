package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/repositories/memory"
	"github.com/SAP-F-2025/scms/internal/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scenarioSnapshot: student 1 enrolled in courses 1 and 3 of four; student 2 enrolled in course 2
func scenarioSnapshot() models.Snapshot {
	return models.Snapshot{
		Students: []models.Student{
			{ID: "1", RegNo: "R-001", Name: "Ada Lovelace", Email: "ada@uni.edu", Year: 2},
			{ID: "2", RegNo: "R-002", Name: "Alan Turing", Email: "alan@uni.edu", Year: 3},
		},
		Courses: []models.Course{
			{ID: "1", Code: "CS101", Title: "Programming", Credits: 4},
			{ID: "2", Code: "CS102", Title: "Data Structures", Credits: 4},
			{ID: "3", Code: "MA101", Title: "Calculus", Credits: 3},
			{ID: "4", Code: "PH101", Title: "Physics", Credits: 5},
		},
		Enrollments: []models.Enrollment{
			{ID: "e1", StudentID: "1", CourseID: "1", Grade: models.GradeB},
			{ID: "e2", StudentID: "1", CourseID: "3"},
			{ID: "e3", StudentID: "2", CourseID: "2", Grade: models.GradeA},
		},
	}
}

func newScenarioStore(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.New()
	if _, err := repositories.Seed(context.Background(), store, scenarioSnapshot(), discardLogger()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return store
}

// countingRepository counts enrollment writes and injects failures
type countingRepository struct {
	repositories.Repository
	enrollments *countingEnrollments
}

func newCountingRepository(inner repositories.Repository) *countingRepository {
	return &countingRepository{
		Repository:  inner,
		enrollments: &countingEnrollments{EnrollmentRepository: inner.Enrollment(), failDelete: map[models.ID]error{}},
	}
}

func (r *countingRepository) Enrollment() repositories.EnrollmentRepository {
	return r.enrollments
}

type countingEnrollments struct {
	repositories.EnrollmentRepository

	creates  atomic.Int32
	replaces atomic.Int32
	deletes  atomic.Int32

	mu          sync.Mutex
	failCreate  error
	failReplace error
	failDelete  map[models.ID]error
}

func (e *countingEnrollments) Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error) {
	e.creates.Add(1)
	e.mu.Lock()
	err := e.failCreate
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return e.EnrollmentRepository.Create(ctx, in)
}

func (e *countingEnrollments) Replace(ctx context.Context, id models.ID, in models.EnrollmentInput) (*models.Enrollment, error) {
	e.replaces.Add(1)
	e.mu.Lock()
	err := e.failReplace
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return e.EnrollmentRepository.Replace(ctx, id, in)
}

func (e *countingEnrollments) Delete(ctx context.Context, id models.ID) error {
	e.deletes.Add(1)
	e.mu.Lock()
	err := e.failDelete[models.NormalizeID(id)]
	e.mu.Unlock()
	if err != nil {
		return err
	}
	return e.EnrollmentRepository.Delete(ctx, id)
}

// recordingConfirmer answers every prompt with answer and keeps the prompts
type recordingConfirmer struct {
	answer  bool
	prompts []string
}

func (c *recordingConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, nil
}

func newTestEnrollmentService(repo repositories.Repository, confirmer Confirmer) EnrollmentService {
	return NewEnrollmentService(repo, discardLogger(), validator.New(), confirmer, EnrollmentServiceConfig{CascadeConcurrency: 2})
}

func counterpartIDs(options []Counterpart) []models.ID {
	ids := make([]models.ID, 0, len(options))
	for _, o := range options {
		ids = append(ids, o.ID)
	}
	return ids
}
