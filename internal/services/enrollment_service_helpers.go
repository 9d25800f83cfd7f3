package services

import (
	"fmt"
	"strconv"

	"github.com/SAP-F-2025/scms/internal/models"
)

// ===== ELIGIBILITY =====

// EligibleCourses returns the courses not referenced by any of the enrollments, in catalog order
func EligibleCourses(enrollments []*models.Enrollment, courses []*models.Course) []*models.Course {
	used := models.NewIDSet()
	for _, e := range enrollments {
		used.Add(e.CourseID)
	}
	return eligible(courses, func(c *models.Course) models.ID { return c.ID }, used)
}

// EligibleStudents returns the students not referenced by any of the enrollments, in catalog order
func EligibleStudents(enrollments []*models.Enrollment, students []*models.Student) []*models.Student {
	used := models.NewIDSet()
	for _, e := range enrollments {
		used.Add(e.StudentID)
	}
	return eligible(students, func(s *models.Student) models.ID { return s.ID }, used)
}

// EligibleCounterparts returns the enroll form options for a mode
func EligibleCounterparts(mode Mode, enrollments []*models.Enrollment, students []*models.Student, courses []*models.Course) []Counterpart {
	if mode == ModeByCourse {
		options := EligibleStudents(enrollments, students)
		out := make([]Counterpart, 0, len(options))
		for _, s := range options {
			out = append(out, Counterpart{ID: models.NormalizeID(s.ID), Label: StudentLabel(s)})
		}
		return out
	}

	options := EligibleCourses(enrollments, courses)
	out := make([]Counterpart, 0, len(options))
	for _, c := range options {
		out = append(out, Counterpart{ID: models.NormalizeID(c.ID), Label: CourseLabel(c)})
	}
	return out
}

func eligible[T any](items []T, idOf func(T) models.ID, used models.IDSet) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !used.Has(idOf(item)) {
			out = append(out, item)
		}
	}
	return out
}

// CourseLabel renders a course option as "Title (CODE)"
func CourseLabel(c *models.Course) string {
	return fmt.Sprintf("%s (%s)", c.Title, c.Code)
}

// StudentLabel renders a student option as "Name (RegNo)"
func StudentLabel(s *models.Student) string {
	return fmt.Sprintf("%s (%s)", s.Name, s.RegNo)
}

// ===== DETAIL VIEW =====

// DetailView is the local state of a student or course detail page.
// Student is the subject in ModeByStudent, Course in ModeByCourse.
// Students and Courses hold the full counterpart list of the other side.
type DetailView struct {
	Mode        Mode
	Student     *models.Student
	Course      *models.Course
	Students    []*models.Student
	Courses     []*models.Course
	Enrollments []*models.Enrollment
}

// SubjectID is the normalized id of the fixed side
func (v *DetailView) SubjectID() models.ID {
	if v.Mode == ModeByCourse {
		if v.Course == nil {
			return ""
		}
		return models.NormalizeID(v.Course.ID)
	}
	if v.Student == nil {
		return ""
	}
	return models.NormalizeID(v.Student.ID)
}

// Eligible returns the counterparts that can still be enrolled
func (v *DetailView) Eligible() []Counterpart {
	return EligibleCounterparts(v.Mode, v.Enrollments, v.Students, v.Courses)
}

// EmptyEligibleMessage is shown when Eligible is empty
func (v *DetailView) EmptyEligibleMessage() string {
	if v.Mode == ModeByCourse {
		return MsgNoStudentsAvailable
	}
	return MsgNoCoursesAvailable
}

// Rows resolves every enrollment to display fields. Dangling references get placeholders.
func (v *DetailView) Rows() []EnrollmentRow {
	rows := make([]EnrollmentRow, 0, len(v.Enrollments))

	if v.Mode == ModeByCourse {
		byID := make(map[models.ID]*models.Student, len(v.Students))
		for _, s := range v.Students {
			byID[models.NormalizeID(s.ID)] = s
		}
		for _, e := range v.Enrollments {
			row := EnrollmentRow{
				EnrollmentID:  models.NormalizeID(e.ID),
				CounterpartID: models.NormalizeID(e.StudentID),
				Name:          UnknownStudent,
				Code:          Placeholder,
				Detail:        Placeholder,
				Grade:         e.Grade,
				GradeLabel:    e.Grade.Label(),
			}
			if s, ok := byID[row.CounterpartID]; ok {
				row.Name, row.Code, row.Detail, row.Known = s.Name, s.RegNo, s.Email, true
			}
			rows = append(rows, row)
		}
		return rows
	}

	byID := make(map[models.ID]*models.Course, len(v.Courses))
	for _, c := range v.Courses {
		byID[models.NormalizeID(c.ID)] = c
	}
	for _, e := range v.Enrollments {
		row := EnrollmentRow{
			EnrollmentID:  models.NormalizeID(e.ID),
			CounterpartID: models.NormalizeID(e.CourseID),
			Name:          UnknownCourse,
			Code:          Placeholder,
			Detail:        Placeholder,
			Grade:         e.Grade,
			GradeLabel:    e.Grade.Label(),
		}
		if c, ok := byID[row.CounterpartID]; ok {
			row.Name, row.Code, row.Detail, row.Known = c.Title, c.Code, strconv.Itoa(c.Credits), true
		}
		rows = append(rows, row)
	}
	return rows
}

// Header is the subtitle line of the detail page
func (v *DetailView) Header() string {
	if v.Mode == ModeByCourse {
		if v.Course == nil {
			return ""
		}
		return fmt.Sprintf("Code: %s • Credits: %d", v.Course.Code, v.Course.Credits)
	}
	if v.Student == nil {
		return ""
	}
	return fmt.Sprintf("Reg No: %s • Email: %s • Year: %d", v.Student.RegNo, v.Student.Email, v.Student.Year)
}

// Title is the heading of the detail page
func (v *DetailView) Title() string {
	if v.Mode == ModeByCourse {
		if v.Course == nil {
			return ""
		}
		return v.Course.Title
	}
	if v.Student == nil {
		return ""
	}
	return v.Student.Name
}

func (v *DetailView) findEnrollment(id models.ID) (int, *models.Enrollment) {
	for i, e := range v.Enrollments {
		if e.ID.Equal(id) {
			return i, e
		}
	}
	return -1, nil
}

func (v *DetailView) removeEnrollment(id models.ID) {
	kept := make([]*models.Enrollment, 0, len(v.Enrollments))
	for _, e := range v.Enrollments {
		if !e.ID.Equal(id) {
			kept = append(kept, e)
		}
	}
	v.Enrollments = kept
}

// pair orders the subject and a counterpart as (student, course)
func (v *DetailView) pair(counterpartID models.ID) (models.ID, models.ID) {
	if v.Mode == ModeByCourse {
		return models.NormalizeID(counterpartID), v.SubjectID()
	}
	return v.SubjectID(), models.NormalizeID(counterpartID)
}

func (v *DetailView) hasCounterpart(id models.ID) bool {
	if v.Mode == ModeByCourse {
		for _, s := range v.Students {
			if s.ID.Equal(id) {
				return true
			}
		}
		return false
	}
	for _, c := range v.Courses {
		if c.ID.Equal(id) {
			return true
		}
	}
	return false
}

func normalizeEnrollments(enrollments []*models.Enrollment) []*models.Enrollment {
	out := make([]*models.Enrollment, 0, len(enrollments))
	for _, e := range enrollments {
		normalized := e.Normalize()
		out = append(out, &normalized)
	}
	return out
}
