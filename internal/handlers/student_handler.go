package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	recordService services.RecordService
}

func NewStudentHandler(recordService services.RecordService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:   NewBaseHandler(logger),
		recordService: recordService,
	}
}

// ListStudents lists every student in insertion order
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.recordService.ListStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// GetStudent returns one student
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	student, err := h.recordService.GetStudent(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// CreateStudent stores a student. An id in the body is kept when unused.
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var body models.Student
	if !h.bindJSON(c, &body) {
		return
	}

	h.LogRequest(c, "Creating student", "reg_no", body.RegNo)

	student, err := h.recordService.CreateStudent(c.Request.Context(), &body)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// ReplaceStudent replaces every field of a student
// @Router /students/{id} [put]
func (h *StudentHandler) ReplaceStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	var body models.Student
	if !h.bindJSON(c, &body) || !h.checkBodyID(c, id, body.ID) {
		return
	}

	h.LogRequest(c, "Replacing student", "student_id", id)

	student, err := h.recordService.ReplaceStudent(c.Request.Context(), id, body.Input())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent deletes the student only; enrollments are left to the caller
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting student", "student_id", id)

	if err := h.recordService.DeleteStudent(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
