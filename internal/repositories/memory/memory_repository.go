// Package memory is an in-process relation store with json-server semantics:
// server-assigned short ids, insertion-ordered listings and no referential checks.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

// Store implements repositories.Repository in memory
type Store struct {
	mu          sync.RWMutex
	students    *table[models.Student]
	courses     *table[models.Course]
	enrollments *table[models.Enrollment]
	closed      bool
}

func New() *Store {
	return &Store{
		students:    newTable[models.Student](),
		courses:     newTable[models.Course](),
		enrollments: newTable[models.Enrollment](),
	}
}

func (s *Store) Student() repositories.StudentRepository {
	return &studentRepository{store: s}
}

func (s *Store) Course() repositories.CourseRepository {
	return &courseRepository{store: s}
}

func (s *Store) Enrollment() repositories.EnrollmentRepository {
	return &enrollmentRepository{store: s}
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("memory store is closed")
	}
	return ctx.Err()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Snapshot copies the current state in db.json layout
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Snapshot{
		Students:    s.students.all(),
		Courses:     s.courses.all(),
		Enrollments: s.enrollments.all(),
	}
}

// ===== STUDENTS =====

type studentRepository struct {
	store *Store
}

func (r *studentRepository) List(ctx context.Context) ([]*models.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := r.store.students.all()
	out := make([]*models.Student, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id models.ID) (*models.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.students.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (r *studentRepository) Create(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := in.Record(r.store.students.nextID())
	if err := r.store.students.insert(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *studentRepository) Insert(ctx context.Context, student *models.Student) (*models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := student.Input().Record(student.ID)
	if row.ID.IsZero() {
		row.ID = r.store.students.nextID()
	}
	if err := r.store.students.insert(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *studentRepository) Replace(ctx context.Context, id models.ID, in models.StudentInput) (*models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := in.Record(id)
	if err := r.store.students.replace(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *studentRepository) Delete(ctx context.Context, id models.ID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.students.remove(id)
}

// ===== COURSES =====

type courseRepository struct {
	store *Store
}

func (r *courseRepository) List(ctx context.Context) ([]*models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := r.store.courses.all()
	out := make([]*models.Course, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id models.ID) (*models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.courses.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (r *courseRepository) Create(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := in.Record(r.store.courses.nextID())
	if err := r.store.courses.insert(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *courseRepository) Insert(ctx context.Context, course *models.Course) (*models.Course, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := course.Input().Record(course.ID)
	if row.ID.IsZero() {
		row.ID = r.store.courses.nextID()
	}
	if err := r.store.courses.insert(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *courseRepository) Replace(ctx context.Context, id models.ID, in models.CourseInput) (*models.Course, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := in.Record(id)
	if err := r.store.courses.replace(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *courseRepository) Delete(ctx context.Context, id models.ID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.courses.remove(id)
}

// ===== ENROLLMENTS =====

type enrollmentRepository struct {
	store *Store
}

func (r *enrollmentRepository) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*models.Enrollment, 0)
	for _, row := range r.store.enrollments.all() {
		if filters.Matches(&row) {
			out = append(out, &row)
		}
	}
	return out, nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id models.ID) (*models.Enrollment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.enrollments.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := in.Record(r.store.enrollments.nextID())
	if err := r.store.enrollments.insert(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *enrollmentRepository) Insert(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := enrollment.Normalize()
	if row.ID.IsZero() {
		row.ID = r.store.enrollments.nextID()
	}
	if err := r.store.enrollments.insert(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *enrollmentRepository) Replace(ctx context.Context, id models.ID, in models.EnrollmentInput) (*models.Enrollment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := in.Record(id)
	if err := r.store.enrollments.replace(row.ID, row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, id models.ID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.enrollments.remove(id)
}

// RepositoryManager serves a memory store, optionally seeded from a snapshot
type RepositoryManager struct {
	store    *Store
	snapshot *models.Snapshot
}

func NewRepositoryManager(snapshot *models.Snapshot) repositories.RepositoryManager {
	return &RepositoryManager{snapshot: snapshot}
}

func (rm *RepositoryManager) Initialize() error {
	store := New()
	if rm.snapshot != nil {
		if err := store.load(*rm.snapshot); err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
	}
	rm.store = store
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.store
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.store == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.store.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.store == nil {
		return nil
	}
	return rm.store.Close()
}

// load replaces the state with a snapshot. Duplicate ids are an error.
func (s *Store) load(snapshot models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students := newTable[models.Student]()
	for _, row := range snapshot.Students {
		row.ID = models.NormalizeID(row.ID)
		if row.ID == "" {
			row.ID = students.nextID()
		}
		if err := students.insert(row.ID, row); err != nil {
			return fmt.Errorf("student %s: %w", row.ID, err)
		}
	}

	courses := newTable[models.Course]()
	for _, row := range snapshot.Courses {
		row.ID = models.NormalizeID(row.ID)
		if row.ID == "" {
			row.ID = courses.nextID()
		}
		if err := courses.insert(row.ID, row); err != nil {
			return fmt.Errorf("course %s: %w", row.ID, err)
		}
	}

	enrollments := newTable[models.Enrollment]()
	for _, row := range snapshot.Enrollments {
		row = row.Normalize()
		if row.ID == "" {
			row.ID = enrollments.nextID()
		}
		if err := enrollments.insert(row.ID, row); err != nil {
			return fmt.Errorf("enrollment %s: %w", row.ID, err)
		}
	}

	s.students, s.courses, s.enrollments = students, courses, enrollments
	return nil
}
