package repositories

import "context"

// Repository aggregates the three collections of a relation store
type Repository interface {
	Student() StudentRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with their backing connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
