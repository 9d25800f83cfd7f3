package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

// insertionOrder is the listing order of every collection
const insertionOrder = "created_at ASC, id ASC"

// handleDBError wraps a gorm error, translating the errors callers branch on
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s failed: %w", operation, repositories.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s failed: %w", operation, repositories.ErrConflict)
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// checkAffected turns a write that matched no row into ErrNotFound
func checkAffected(result *gorm.DB, operation string) error {
	if result.Error != nil {
		return handleDBError(result.Error, operation)
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, operation)
	}
	return nil
}

func assignID(id models.ID) models.ID {
	if id = models.NormalizeID(id); id == "" {
		return models.NewID()
	}
	return id
}

func applyEnrollmentFilters(query *gorm.DB, filters repositories.EnrollmentFilters) *gorm.DB {
	filters = filters.Normalize()
	if filters.StudentID != "" {
		query = query.Where("student_id = ?", filters.StudentID)
	}
	if filters.CourseID != "" {
		query = query.Where("course_id = ?", filters.CourseID)
	}
	return query
}
