package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/scms/internal/config"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
)

const serviceName = "scms-store"

type HandlerManager struct {
	serviceManager    services.ServiceManager
	studentHandler    *StudentHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	authMiddleware    *CasdoorAuthMiddleware
	logger            utils.Logger
}

// NewHandlerManager wires the handlers. Writes require a Casdoor token only when Casdoor is configured.
func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, casdoorConfig config.CasdoorConfig) *HandlerManager {
	hm := &HandlerManager{
		serviceManager:    serviceManager,
		studentHandler:    NewStudentHandler(serviceManager.Record(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Record(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Record(), logger),
		logger:            logger,
	}
	if casdoorConfig.Enabled() {
		hm.authMiddleware = NewCasdoorAuthMiddleware(casdoorConfig)
	}
	return hm
}

// writeGuard authenticates mutating routes
func (hm *HandlerManager) writeGuard() gin.HandlerFunc {
	if hm.authMiddleware == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return hm.authMiddleware.AuthMiddleware()
}

// readGuard records the caller on read routes without requiring a token
func (hm *HandlerManager) readGuard() gin.HandlerFunc {
	if hm.authMiddleware == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return hm.authMiddleware.OptionalAuthMiddleware()
}

// SetupRoutes registers the json-server style collections and the health check
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	write := hm.writeGuard()
	read := hm.readGuard()

	students := router.Group("/students")
	{
		students.GET("", read, hm.studentHandler.ListStudents)
		students.GET("/:id", read, hm.studentHandler.GetStudent)
		students.POST("", write, hm.studentHandler.CreateStudent)
		students.PUT("/:id", write, hm.studentHandler.ReplaceStudent)
		students.DELETE("/:id", write, hm.studentHandler.DeleteStudent)
	}

	courses := router.Group("/courses")
	{
		courses.GET("", read, hm.courseHandler.ListCourses)
		courses.GET("/:id", read, hm.courseHandler.GetCourse)
		courses.POST("", write, hm.courseHandler.CreateCourse)
		courses.PUT("/:id", write, hm.courseHandler.ReplaceCourse)
		courses.DELETE("/:id", write, hm.courseHandler.DeleteCourse)
	}

	enrollments := router.Group("/enrollments")
	{
		enrollments.GET("", read, hm.enrollmentHandler.ListEnrollments)
		enrollments.GET("/:id", read, hm.enrollmentHandler.GetEnrollment)
		enrollments.POST("", write, hm.enrollmentHandler.CreateEnrollment)
		enrollments.PUT("/:id", write, hm.enrollmentHandler.ReplaceEnrollment)
		enrollments.DELETE("/:id", write, hm.enrollmentHandler.DeleteEnrollment)
	}

	// Health check endpoint
	router.GET("/health", hm.health)
}

func (hm *HandlerManager) health(c *gin.Context) {
	response := models.HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC(),
	}

	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		hm.logger.Warn("Health check failed", "error", err)
		response.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// NewRouter builds a gin engine with middleware and routes
func NewRouter(serviceManager services.ServiceManager, logger utils.Logger, casdoorConfig config.CasdoorConfig) *gin.Engine {
	router := gin.New()
	SetupMiddleware(router, logger)
	NewHandlerManager(serviceManager, logger, casdoorConfig).SetupRoutes(router)
	return router
}
