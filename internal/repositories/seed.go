package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SAP-F-2025/scms/internal/models"
)

// SeedResult counts what a seed run inserted and skipped
type SeedResult struct {
	Inserted int
	Skipped  int
}

// Seed inserts every record of a snapshot, keeping the snapshot ids.
// Records whose id already exists are skipped, so seeding twice is harmless.
func Seed(ctx context.Context, repo Repository, snapshot models.Snapshot, logger *slog.Logger) (SeedResult, error) {
	var result SeedResult

	count := func(err error, kind string, id models.ID) error {
		switch {
		case err == nil:
			result.Inserted++
		case IsConflictError(err):
			result.Skipped++
			logger.Debug("Skipped existing record", "kind", kind, "id", id)
		default:
			return fmt.Errorf("failed to seed %s %s: %w", kind, id, err)
		}
		return nil
	}

	for i := range snapshot.Students {
		student := snapshot.Students[i]
		_, err := repo.Student().Insert(ctx, &student)
		if err := count(err, "student", student.ID); err != nil {
			return result, err
		}
	}

	for i := range snapshot.Courses {
		course := snapshot.Courses[i]
		_, err := repo.Course().Insert(ctx, &course)
		if err := count(err, "course", course.ID); err != nil {
			return result, err
		}
	}

	for i := range snapshot.Enrollments {
		enrollment := snapshot.Enrollments[i].Normalize()
		_, err := repo.Enrollment().Insert(ctx, &enrollment)
		if err := count(err, "enrollment", enrollment.ID); err != nil {
			return result, err
		}
	}

	logger.Info("Seeded relation store", "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

// ReadSnapshot decodes a db.json style document. Ids may be numbers or strings.
func ReadSnapshot(r io.Reader) (models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snapshot, nil
}

func LoadSnapshotFile(path string) (models.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return ReadSnapshot(f)
}
