package models

import "time"

// ===== VALIDATION RESPONSES =====

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
	Code    string `json:"code"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error            string                    `json:"error"`
	Message          string                    `json:"message"`
	Code             string                    `json:"code"`
	Details          interface{}               `json:"details,omitempty"`
	Timestamp        time.Time                 `json:"timestamp"`
	Path             string                    `json:"path"`
	ValidationErrors []ValidationErrorResponse `json:"validation_errors,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// ===== STORE SNAPSHOT =====

// Snapshot is the db.json layout of a relation store.
type Snapshot struct {
	Students    []Student    `json:"students"`
	Courses     []Course     `json:"courses"`
	Enrollments []Enrollment `json:"enrollments"`
}
