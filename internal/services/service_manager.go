package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/scms/internal/events"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/validator"
)

// ServiceManager wires the services over one repository
type ServiceManager interface {
	Initialize(ctx context.Context) error

	Enrollment() EnrollmentService
	Student() StudentService
	Course() CourseService
	Record() RecordService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	Enrollment EnrollmentServiceConfig

	// Confirmer approves destructive actions; nil approves everything
	Confirmer Confirmer

	// Publisher receives store change events; nil disables them
	Publisher events.EventPublisher
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	// Service instances
	enrollmentService EnrollmentService
	studentService    StudentService
	courseService     CourseService
	recordService     RecordService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// NewDefaultServiceManager creates a service manager that never prompts and publishes nothing
func NewDefaultServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	return NewServiceManager(repo, logger, validator, ServiceManagerConfig{Confirmer: AlwaysConfirm})
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.repo == nil {
		return fmt.Errorf("failed to initialize services: repository is nil")
	}

	sm.logger.Info("Initializing service manager")

	sm.enrollmentService = NewEnrollmentService(sm.repo, sm.logger, sm.validator, sm.config.Confirmer, sm.config.Enrollment)
	sm.studentService = NewStudentService(sm.repo, sm.enrollmentService, sm.logger, sm.validator, sm.config.Confirmer)
	sm.courseService = NewCourseService(sm.repo, sm.enrollmentService, sm.logger, sm.validator, sm.config.Confirmer)
	sm.recordService = NewRecordService(sm.repo, sm.config.Publisher, sm.logger, sm.validator)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.enrollmentService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.studentService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseService
}

func (sm *serviceManager) Record() RecordService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.recordService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
