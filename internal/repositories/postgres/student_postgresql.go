package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/scms/internal/cache"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

type StudentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// List returns every student in insertion order, cached
func (s *StudentPostgreSQL) List(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student

	err := s.cacheManager.Student.CacheOrExecute(ctx, cache.ListKey("all"), &students, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		rows := make([]*models.Student, 0)
		if err := s.db.WithContext(ctx).Order(insertionOrder).Find(&rows).Error; err != nil {
			return nil, handleDBError(err, "list students")
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return students, nil
}

// GetByID retrieves a student by ID with caching
func (s *StudentPostgreSQL) GetByID(ctx context.Context, id models.ID) (*models.Student, error) {
	id = models.NormalizeID(id)
	var student models.Student

	err := s.cacheManager.Student.CacheOrExecute(ctx, cache.IDKey(id.String()), &student, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		var row models.Student
		if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
			return nil, handleDBError(err, "get student")
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}

	return &student, nil
}

func (s *StudentPostgreSQL) Create(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	return s.insert(ctx, in.Record(models.NewID()))
}

func (s *StudentPostgreSQL) Insert(ctx context.Context, student *models.Student) (*models.Student, error) {
	return s.insert(ctx, student.Input().Record(assignID(student.ID)))
}

func (s *StudentPostgreSQL) insert(ctx context.Context, row models.Student) (*models.Student, error) {
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, handleDBError(err, "create student")
	}

	cache.InvalidateStudentCache(ctx, s.cacheManager, row.ID.String())
	return &row, nil
}

// Replace overwrites every field of the student
func (s *StudentPostgreSQL) Replace(ctx context.Context, id models.ID, in models.StudentInput) (*models.Student, error) {
	row := in.Record(id)

	result := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"reg_no": row.RegNo,
			"name":   row.Name,
			"email":  row.Email,
			"year":   row.Year,
		})
	if err := checkAffected(result, "replace student"); err != nil {
		return nil, err
	}

	cache.InvalidateStudentCache(ctx, s.cacheManager, row.ID.String())
	return &row, nil
}

func (s *StudentPostgreSQL) Delete(ctx context.Context, id models.ID) error {
	id = models.NormalizeID(id)

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Student{})
	if err := checkAffected(result, "delete student"); err != nil {
		return err
	}

	cache.InvalidateStudentCache(ctx, s.cacheManager, id.String())
	return nil
}
