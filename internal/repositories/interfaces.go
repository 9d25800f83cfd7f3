package repositories

import (
	"context"

	"github.com/SAP-F-2025/scms/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// EnrollmentFilters narrows an enrollment listing. Zero ids do not filter.
type EnrollmentFilters struct {
	StudentID models.ID `json:"studentId"`
	CourseID  models.ID `json:"courseId"`
}

// Normalize returns the filters with both ids in canonical form
func (f EnrollmentFilters) Normalize() EnrollmentFilters {
	return EnrollmentFilters{
		StudentID: models.NormalizeID(f.StudentID),
		CourseID:  models.NormalizeID(f.CourseID),
	}
}

// Matches reports whether an enrollment passes the filters
func (f EnrollmentFilters) Matches(e *models.Enrollment) bool {
	f = f.Normalize()
	if f.StudentID != "" && !e.StudentID.Equal(f.StudentID) {
		return false
	}
	if f.CourseID != "" && !e.CourseID.Equal(f.CourseID) {
		return false
	}
	return true
}

// ByParent builds the filter selecting every enrollment of one parent entity
func ByParent(kind models.EntityKind, parentID models.ID) EnrollmentFilters {
	if kind == models.KindCourse {
		return EnrollmentFilters{CourseID: models.NormalizeID(parentID)}
	}
	return EnrollmentFilters{StudentID: models.NormalizeID(parentID)}
}

// ===== COLLECTION REPOSITORIES =====

// StudentRepository is the students collection.
// Create never sends an id; the store assigns one. Insert keeps the id of the record.
type StudentRepository interface {
	List(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id models.ID) (*models.Student, error)
	Create(ctx context.Context, in models.StudentInput) (*models.Student, error)
	Insert(ctx context.Context, student *models.Student) (*models.Student, error)
	Replace(ctx context.Context, id models.ID, in models.StudentInput) (*models.Student, error)
	Delete(ctx context.Context, id models.ID) error
}

// CourseRepository is the courses collection
type CourseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id models.ID) (*models.Course, error)
	Create(ctx context.Context, in models.CourseInput) (*models.Course, error)
	Insert(ctx context.Context, course *models.Course) (*models.Course, error)
	Replace(ctx context.Context, id models.ID, in models.CourseInput) (*models.Course, error)
	Delete(ctx context.Context, id models.ID) error
}

// EnrollmentRepository is the enrollments collection. The store enforces
// neither pair uniqueness nor foreign keys.
type EnrollmentRepository interface {
	List(ctx context.Context, filters EnrollmentFilters) ([]*models.Enrollment, error)
	GetByID(ctx context.Context, id models.ID) (*models.Enrollment, error)
	Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error)
	Insert(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	Replace(ctx context.Context, id models.ID, in models.EnrollmentInput) (*models.Enrollment, error)
	Delete(ctx context.Context, id models.ID) error
}
