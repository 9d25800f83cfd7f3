package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

// newTestRepository needs a disposable database in SCMS_TEST_DATABASE_URL
func newTestRepository(t *testing.T) *PostgreSQLRepository {
	t.Helper()

	dsn := os.Getenv("SCMS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SCMS_TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	rm := NewRepositoryManager(RepositoryConfig{DB: db, RedisClient: client, AutoMigrate: true})
	if err := rm.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	for _, table := range []string{"enrollments", "students", "courses"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to clean %s: %v", table, err)
		}
	}
	t.Cleanup(func() { _ = rm.Shutdown(context.Background()) })

	return rm.GetRepository().(*PostgreSQLRepository)
}

func TestPostgreSQL_StudentLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Student().Create(ctx, models.NewStudentInput("SCMS/001", "Jane", "jane@example.com", 1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := repo.Student().Replace(ctx, created.ID, models.NewStudentInput("SCMS/001", "Jane Doe", "jane@example.com", 2)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := repo.Student().GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Jane Doe" || got.Year != 2 {
		t.Errorf("replace not visible: %+v", got)
	}

	if err := repo.Student().Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Student().Delete(ctx, created.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("second delete should be ErrNotFound, got %v", err)
	}
	if _, err := repo.Student().Replace(ctx, "nope", models.NewStudentInput("X", "Y", "z@example.com", 1)); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("replace of missing row should be ErrNotFound, got %v", err)
	}
}

func TestPostgreSQL_InsertConflict(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	course := &models.Course{ID: "c1", Code: "DS101", Title: "Data Structures", Credits: 3}
	if _, err := repo.Course().Insert(ctx, course); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := repo.Course().Insert(ctx, course); !errors.Is(err, repositories.ErrConflict) {
		t.Errorf("duplicate id should be ErrConflict, got %v", err)
	}
}

func TestPostgreSQL_EnrollmentFiltersAndOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, in := range []models.EnrollmentInput{
		models.NewEnrollmentInput("s1", "c3", ""),
		models.NewEnrollmentInput("s1", "c1", models.GradeB),
		models.NewEnrollmentInput("s2", "c1", ""),
	} {
		if _, err := repo.Enrollment().Create(ctx, in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.Enrollment().List(ctx, repositories.EnrollmentFilters{StudentID: " s1 "})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].CourseID != "c3" || got[1].CourseID != "c1" {
		t.Errorf("unexpected listing %+v", got)
	}

	byCourse, err := repo.Enrollment().List(ctx, repositories.ByParent(models.KindCourse, "c1"))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byCourse) != 2 {
		t.Errorf("got %d enrollments for c1, want 2", len(byCourse))
	}
}
