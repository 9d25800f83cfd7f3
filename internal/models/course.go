package models

import (
	"strings"
	"time"
)

const DefaultCourseCredits = 3

type Course struct {
	ID      ID     `json:"id" gorm:"primaryKey;size:64"`
	Code    string `json:"code" gorm:"not null;size:32;index" validate:"required,max=32"`
	Title   string `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Credits int    `json:"credits" gorm:"not null;default:3" validate:"min=1,max=5"`

	// CreatedAt keeps listings in insertion order in SQL backends
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime;index"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseInput is the body of a course create or replace. It never carries an id.
type CourseInput struct {
	Code    string `json:"code" validate:"required,max=32"`
	Title   string `json:"title" validate:"required,max=200"`
	Credits int    `json:"credits" validate:"min=1,max=5"`
}

func NewCourseInput(code, title string, credits int) CourseInput {
	return CourseInput{
		Code:    strings.TrimSpace(code),
		Title:   strings.TrimSpace(title),
		Credits: credits,
	}
}

func (in CourseInput) WithDefaults() CourseInput {
	if in.Credits == 0 {
		in.Credits = DefaultCourseCredits
	}
	return in
}

func (in CourseInput) Record(id ID) Course {
	return Course{
		ID:      NormalizeID(id),
		Code:    in.Code,
		Title:   in.Title,
		Credits: in.Credits,
	}
}

func (c Course) Input() CourseInput {
	return CourseInput{Code: c.Code, Title: c.Title, Credits: c.Credits}
}
