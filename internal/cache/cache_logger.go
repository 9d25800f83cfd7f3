package cache

import (
	"context"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of failing
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging instead of failing
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

func IDKey(id string) string {
	return "id:" + id
}

// ListKey names a cached listing. Enrollment listings include their filters.
func ListKey(parts ...string) string {
	key := "list"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// InvalidateStudentCache drops the record and every student listing
func InvalidateStudentCache(ctx context.Context, cm *CacheManager, studentID string) {
	SafeDelete(ctx, cm.Student, IDKey(studentID))
	SafeInvalidatePattern(ctx, cm.Student, "list*")
}

// InvalidateCourseCache drops the record and every course listing
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, courseID string) {
	SafeDelete(ctx, cm.Course, IDKey(courseID))
	SafeInvalidatePattern(ctx, cm.Course, "list*")
}

// InvalidateEnrollmentCache drops the record and every filtered listing,
// since a single enrollment appears under its student, its course and the full list
func InvalidateEnrollmentCache(ctx context.Context, cm *CacheManager, enrollmentID string) {
	SafeDelete(ctx, cm.Enrollment, IDKey(enrollmentID))
	SafeInvalidatePattern(ctx, cm.Enrollment, "list*")
}
