package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
)

// BaseHandler carries what every resource handler shares
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// requestLogger prefers the logger carrying the request id
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.FromContext(c.Request.Context(), h.logger)
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	h.requestLogger(c).Info(msg, append(args, "method", c.Request.Method, "path", c.Request.URL.Path)...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	h.requestLogger(c).Error(msg, append(args, "error", err, "path", c.Request.URL.Path)...)
}

// parseIDParam reads a path id. Ids are opaque strings; numeric ids arrive as their decimal form.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) models.ID {
	id := models.NormalizeID(c.Param(name))
	if id == "" {
		h.respondError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid "+name, nil)
	}
	return id
}

// bindJSON decodes the request body and answers 400 when it is malformed
func (h *BaseHandler) bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		h.respondError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return false
	}
	return true
}

// checkBodyID rejects a body whose id disagrees with the path
func (h *BaseHandler) checkBodyID(c *gin.Context, pathID, bodyID models.ID) bool {
	if bodyID.IsZero() || bodyID.Equal(pathID) {
		return true
	}
	h.respondError(c, http.StatusBadRequest, "BAD_REQUEST", "Body id does not match path id", gin.H{
		"path_id": pathID,
		"body_id": models.NormalizeID(bodyID),
	})
	return false
}

func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		Details:   details,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response := models.ErrorResponse{
			Error:     http.StatusText(http.StatusBadRequest),
			Message:   "Validation failed",
			Code:      "VALIDATION_FAILED",
			Details:   validationErr.Error(),
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		}
		for _, field := range validationErr.Fields {
			response.ValidationErrors = append(response.ValidationErrors, models.ValidationErrorResponse{
				Field:   field.Field,
				Message: field.Message,
				Code:    field.Rule,
			})
		}
		c.JSON(http.StatusBadRequest, response)
	case errors.Is(err, services.ErrValidationFailed):
		h.respondError(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err.Error())
	case errors.Is(err, services.ErrNotFound):
		h.respondError(c, http.StatusNotFound, "NOT_FOUND", "Record not found", nil)
	case errors.Is(err, services.ErrConflict):
		h.respondError(c, http.StatusConflict, "CONFLICT", "Resource conflict", nil)
	case errors.Is(err, services.ErrAlreadyEnrolled):
		h.respondError(c, http.StatusConflict, "ALREADY_ENROLLED", "Already enrolled", nil)
	default:
		h.LogError(c, err, "Unexpected service error")
		h.respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
