package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "scms-store"
	EventVersion = "1.0"
)

type EventType string

const (
	StudentCreated EventType = "student.created"
	StudentUpdated EventType = "student.updated"
	StudentDeleted EventType = "student.deleted"

	CourseCreated EventType = "course.created"
	CourseUpdated EventType = "course.updated"
	CourseDeleted EventType = "course.deleted"

	EnrollmentCreated      EventType = "enrollment.created"
	EnrollmentUpdated      EventType = "enrollment.updated"
	EnrollmentGradeUpdated EventType = "enrollment.grade_updated"
	EnrollmentDeleted      EventType = "enrollment.deleted"
)

// Event is a change notification of the relation store
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// RecordChange is the payload of every event: the record id and, except on delete, the record
type RecordChange struct {
	ID     string      `json:"id"`
	Record interface{} `json:"record,omitempty"`
}

func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes store change events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
