package models

import (
	"strings"
	"time"
)

const DefaultStudentYear = 1

type Student struct {
	ID    ID     `json:"id" gorm:"primaryKey;size:64"`
	RegNo string `json:"regNo" gorm:"not null;size:64;index" validate:"required,max=64"`
	Name  string `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	Email string `json:"email" gorm:"not null;size:255" validate:"required,email,max=255"`
	Year  int    `json:"year" gorm:"not null;default:1" validate:"min=1,max=4"`

	// CreatedAt keeps listings in insertion order in SQL backends
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime;index"`
}

func (Student) TableName() string {
	return "students"
}

// StudentInput is the body of a student create or replace. It never carries an id.
type StudentInput struct {
	RegNo string `json:"regNo" validate:"required,max=64"`
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=255"`
	Year  int    `json:"year" validate:"min=1,max=4"`
}

func NewStudentInput(regNo, name, email string, year int) StudentInput {
	return StudentInput{
		RegNo: strings.TrimSpace(regNo),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Year:  year,
	}
}

// WithDefaults fills the new-student form defaults. Only creates from the client use it.
func (in StudentInput) WithDefaults() StudentInput {
	if in.Year == 0 {
		in.Year = DefaultStudentYear
	}
	return in
}

// Record builds the full record sent on replace, with the id echoed in the body.
func (in StudentInput) Record(id ID) Student {
	return Student{
		ID:    NormalizeID(id),
		RegNo: in.RegNo,
		Name:  in.Name,
		Email: in.Email,
		Year:  in.Year,
	}
}

func (s Student) Input() StudentInput {
	return StudentInput{RegNo: s.RegNo, Name: s.Name, Email: s.Email, Year: s.Year}
}
