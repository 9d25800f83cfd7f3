package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/scms/internal/cache"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

// EnrollmentPostgreSQL stores enrollments without foreign key constraints,
// matching the relation store contract
type EnrollmentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewEnrollmentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (e *EnrollmentPostgreSQL) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	filters = filters.Normalize()
	key := cache.ListKey("student", filters.StudentID.String(), "course", filters.CourseID.String())
	var enrollments []*models.Enrollment

	err := e.cacheManager.Enrollment.CacheOrExecute(ctx, key, &enrollments, cache.EnrollmentCacheConfig.TTL, func() (interface{}, error) {
		rows := make([]*models.Enrollment, 0)
		query := applyEnrollmentFilters(e.db.WithContext(ctx), filters)
		if err := query.Order(insertionOrder).Find(&rows).Error; err != nil {
			return nil, handleDBError(err, "list enrollments")
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (e *EnrollmentPostgreSQL) GetByID(ctx context.Context, id models.ID) (*models.Enrollment, error) {
	id = models.NormalizeID(id)
	var enrollment models.Enrollment

	err := e.cacheManager.Enrollment.CacheOrExecute(ctx, cache.IDKey(id.String()), &enrollment, cache.EnrollmentCacheConfig.TTL, func() (interface{}, error) {
		var row models.Enrollment
		if err := e.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
			return nil, handleDBError(err, "get enrollment")
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}

	return &enrollment, nil
}

func (e *EnrollmentPostgreSQL) Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error) {
	return e.insert(ctx, in.Record(models.NewID()))
}

func (e *EnrollmentPostgreSQL) Insert(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	row := enrollment.Normalize()
	return e.insert(ctx, row.Input().Record(assignID(row.ID)))
}

func (e *EnrollmentPostgreSQL) insert(ctx context.Context, row models.Enrollment) (*models.Enrollment, error) {
	if err := e.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, handleDBError(err, "create enrollment")
	}

	cache.InvalidateEnrollmentCache(ctx, e.cacheManager, row.ID.String())
	return &row, nil
}

// Replace rewrites both foreign keys and the grade
func (e *EnrollmentPostgreSQL) Replace(ctx context.Context, id models.ID, in models.EnrollmentInput) (*models.Enrollment, error) {
	row := in.Record(id)

	result := e.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"student_id": row.StudentID,
			"course_id":  row.CourseID,
			"grade":      row.Grade,
		})
	if err := checkAffected(result, "replace enrollment"); err != nil {
		return nil, err
	}

	cache.InvalidateEnrollmentCache(ctx, e.cacheManager, row.ID.String())
	return &row, nil
}

func (e *EnrollmentPostgreSQL) Delete(ctx context.Context, id models.ID) error {
	id = models.NormalizeID(id)

	result := e.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Enrollment{})
	if err := checkAffected(result, "delete enrollment"); err != nil {
		return err
	}

	cache.InvalidateEnrollmentCache(ctx, e.cacheManager, id.String())
	return nil
}
