package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	recordService services.RecordService
}

func NewEnrollmentHandler(recordService services.RecordService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:   NewBaseHandler(logger),
		recordService: recordService,
	}
}

// ListEnrollments lists enrollments, optionally filtered by studentId and courseId
// @Param studentId query string false "Student ID"
// @Param courseId query string false "Course ID"
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	filters := repositories.EnrollmentFilters{
		StudentID: models.NormalizeID(c.Query("studentId")),
		CourseID:  models.NormalizeID(c.Query("courseId")),
	}

	enrollments, err := h.recordService.ListEnrollments(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	enrollment, err := h.recordService.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// CreateEnrollment stores an enrollment. Pair uniqueness is not enforced here.
// @Router /enrollments [post]
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var body models.Enrollment
	if !h.bindJSON(c, &body) {
		return
	}

	h.LogRequest(c, "Creating enrollment", "student_id", body.StudentID, "course_id", body.CourseID)

	enrollment, err := h.recordService.CreateEnrollment(c.Request.Context(), &body)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// @Router /enrollments/{id} [put]
func (h *EnrollmentHandler) ReplaceEnrollment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	var body models.Enrollment
	if !h.bindJSON(c, &body) || !h.checkBodyID(c, id, body.ID) {
		return
	}

	h.LogRequest(c, "Replacing enrollment", "enrollment_id", id, "grade", body.Grade)

	enrollment, err := h.recordService.ReplaceEnrollment(c.Request.Context(), id, body.Input())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) DeleteEnrollment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting enrollment", "enrollment_id", id)

	if err := h.recordService.DeleteEnrollment(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
