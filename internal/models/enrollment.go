package models

import "time"

type Enrollment struct {
	ID        ID    `json:"id" gorm:"primaryKey;size:64"`
	StudentID ID    `json:"studentId" gorm:"not null;size:64;index"`
	CourseID  ID    `json:"courseId" gorm:"not null;size:64;index"`
	Grade     Grade `json:"grade" gorm:"size:1" validate:"grade"`

	// CreatedAt keeps listings in insertion order in SQL backends
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime;index"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Normalize returns a copy whose identifiers are in canonical form.
func (e Enrollment) Normalize() Enrollment {
	e.ID = NormalizeID(e.ID)
	e.StudentID = NormalizeID(e.StudentID)
	e.CourseID = NormalizeID(e.CourseID)
	return e
}

// Input rebuilds the complete body of the record for a full replace.
func (e Enrollment) Input() EnrollmentInput {
	return NewEnrollmentInput(e.StudentID, e.CourseID, e.Grade)
}

// EnrollmentInput is the body of an enrollment create or replace.
type EnrollmentInput struct {
	StudentID ID    `json:"studentId" validate:"entity_id"`
	CourseID  ID    `json:"courseId" validate:"entity_id"`
	Grade     Grade `json:"grade" validate:"grade"`
}

// NewEnrollmentInput normalizes both foreign keys. The grade defaults to not set.
func NewEnrollmentInput(studentID, courseID interface{}, grade Grade) EnrollmentInput {
	return EnrollmentInput{
		StudentID: NormalizeID(studentID),
		CourseID:  NormalizeID(courseID),
		Grade:     grade,
	}
}

func (in EnrollmentInput) Record(id ID) Enrollment {
	return Enrollment{
		ID:        NormalizeID(id),
		StudentID: NormalizeID(in.StudentID),
		CourseID:  NormalizeID(in.CourseID),
		Grade:     in.Grade,
	}
}

// EntityKind names a parent collection of the enrollment relation.
type EntityKind string

const (
	KindStudent EntityKind = "student"
	KindCourse  EntityKind = "course"
)

func (k EntityKind) IsValid() bool {
	return k == KindStudent || k == KindCourse
}
