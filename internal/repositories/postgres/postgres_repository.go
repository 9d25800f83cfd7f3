package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/scms/internal/cache"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	student    repositories.StudentRepository
	course     repositories.CourseRepository
	enrollment repositories.EnrollmentRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	AutoMigrate bool
}

// NewPostgreSQLRepository creates the repository with all collections sharing one cache manager
func NewPostgreSQLRepository(config RepositoryConfig) *PostgreSQLRepository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	return &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
		student:      NewStudentPostgreSQL(config.DB, cacheManager),
		course:       NewCoursePostgreSQL(config.DB, cacheManager),
		enrollment:   NewEnrollmentPostgreSQL(config.DB, cacheManager),
	}
}

func (r *PostgreSQLRepository) Student() repositories.StudentRepository {
	return r.student
}

func (r *PostgreSQLRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *PostgreSQLRepository) Enrollment() repositories.EnrollmentRepository {
	return r.enrollment
}

// Migrate creates or updates the three tables. No foreign keys are declared.
func (r *PostgreSQLRepository) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(
		&models.Student{},
		&models.Course{},
		&models.Enrollment{},
	)
	return handleDBError(err, "migrate schema")
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.cacheManager.Enabled() {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   *PostgreSQLRepository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{
		config: config,
	}
}

// Initialize checks connections and migrates the schema when asked to
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("Redis connection failed: %w", err)
		}
	}

	repo := NewPostgreSQLRepository(rm.config)
	if rm.config.AutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
	}

	rm.repo = repo
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
