package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/scms/internal/cache"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (c *CoursePostgreSQL) List(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cache.ListKey("all"), &courses, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		rows := make([]*models.Course, 0)
		if err := c.db.WithContext(ctx).Order(insertionOrder).Find(&rows).Error; err != nil {
			return nil, handleDBError(err, "list courses")
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id models.ID) (*models.Course, error) {
	id = models.NormalizeID(id)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cache.IDKey(id.String()), &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var row models.Course
		if err := c.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
			return nil, handleDBError(err, "get course")
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (c *CoursePostgreSQL) Create(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	return c.insert(ctx, in.Record(models.NewID()))
}

func (c *CoursePostgreSQL) Insert(ctx context.Context, course *models.Course) (*models.Course, error) {
	return c.insert(ctx, course.Input().Record(assignID(course.ID)))
}

func (c *CoursePostgreSQL) insert(ctx context.Context, row models.Course) (*models.Course, error) {
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, handleDBError(err, "create course")
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, row.ID.String())
	return &row, nil
}

func (c *CoursePostgreSQL) Replace(ctx context.Context, id models.ID, in models.CourseInput) (*models.Course, error) {
	row := in.Record(id)

	result := c.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"code":    row.Code,
			"title":   row.Title,
			"credits": row.Credits,
		})
	if err := checkAffected(result, "replace course"); err != nil {
		return nil, err
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, row.ID.String())
	return &row, nil
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, id models.ID) error {
	id = models.NormalizeID(id)

	result := c.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Course{})
	if err := checkAffected(result, "delete course"); err != nil {
		return err
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, id.String())
	return nil
}
