package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	recordService services.RecordService
}

func NewCourseHandler(recordService services.RecordService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		recordService: recordService,
	}
}

// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.recordService.ListCourses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	course, err := h.recordService.GetCourse(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var body models.Course
	if !h.bindJSON(c, &body) {
		return
	}

	h.LogRequest(c, "Creating course", "code", body.Code)

	course, err := h.recordService.CreateCourse(c.Request.Context(), &body)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// @Router /courses/{id} [put]
func (h *CourseHandler) ReplaceCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	var body models.Course
	if !h.bindJSON(c, &body) || !h.checkBodyID(c, id, body.ID) {
		return
	}

	h.LogRequest(c, "Replacing course", "course_id", id)

	course, err := h.recordService.ReplaceCourse(c.Request.Context(), id, body.Input())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting course", "course_id", id)

	if err := h.recordService.DeleteCourse(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
