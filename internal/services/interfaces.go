package services

import (
	"context"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

// ===== VIEW TYPES =====

// Mode says which side of the relation a detail view is fixed on
type Mode int

const (
	// ModeByStudent: the subject is a student, counterparts are courses
	ModeByStudent Mode = iota
	// ModeByCourse: the subject is a course, counterparts are students
	ModeByCourse
)

func (m Mode) Kind() models.EntityKind {
	if m == ModeByCourse {
		return models.KindCourse
	}
	return models.KindStudent
}

// Counterpart is one selectable option of the enroll form
type Counterpart struct {
	ID    models.ID `json:"id"`
	Label string    `json:"label"`
}

// EnrollmentRow is one enrollment resolved for display
type EnrollmentRow struct {
	EnrollmentID  models.ID    `json:"enrollmentId"`
	CounterpartID models.ID    `json:"counterpartId"`
	Name          string       `json:"name"`
	Code          string       `json:"code"`
	Detail        string       `json:"detail"`
	Grade         models.Grade `json:"grade"`
	GradeLabel    string       `json:"gradeLabel"`
	Known         bool         `json:"known"`
}

// StudentListView is the students listing
type StudentListView struct {
	Students []*models.Student
}

func (v *StudentListView) Empty() bool {
	return len(v.Students) == 0
}

// CourseListView is the courses listing
type CourseListView struct {
	Courses []*models.Course
}

func (v *CourseListView) Empty() bool {
	return len(v.Courses) == 0
}

// CascadeResult reports a completed cascading delete
type CascadeResult struct {
	Kind               models.EntityKind
	ParentID           models.ID
	EnrollmentsDeleted int
}

// ===== SERVICE INTERFACES =====

// EnrollmentService keeps the enrollment relation consistent with its two sides
type EnrollmentService interface {
	LoadStudentDetail(ctx context.Context, studentID models.ID) (*DetailView, error)
	LoadCourseDetail(ctx context.Context, courseID models.ID) (*DetailView, error)

	Enroll(ctx context.Context, view *DetailView, counterpartID models.ID, grade models.Grade) (*models.Enrollment, error)
	SetGrade(ctx context.Context, view *DetailView, enrollmentID models.ID, grade models.Grade) (*models.Enrollment, error)
	Remove(ctx context.Context, view *DetailView, enrollmentID models.ID) error

	DeleteWithCascade(ctx context.Context, kind models.EntityKind, parentID models.ID) (*CascadeResult, error)
}

// StudentService backs the student forms and listing
type StudentService interface {
	List(ctx context.Context) (*StudentListView, error)
	Get(ctx context.Context, id models.ID) (*models.Student, error)
	Create(ctx context.Context, in models.StudentInput) (*models.Student, error)
	Update(ctx context.Context, id models.ID, in models.StudentInput) (*models.Student, error)
	Delete(ctx context.Context, view *StudentListView, id models.ID) (*CascadeResult, error)
}

// CourseService backs the course forms and listing
type CourseService interface {
	List(ctx context.Context) (*CourseListView, error)
	Get(ctx context.Context, id models.ID) (*models.Course, error)
	Create(ctx context.Context, in models.CourseInput) (*models.Course, error)
	Update(ctx context.Context, id models.ID, in models.CourseInput) (*models.Course, error)
	Delete(ctx context.Context, view *CourseListView, id models.ID) (*CascadeResult, error)
}

// RecordService is the store side: validated record writes that publish change events
type RecordService interface {
	ListStudents(ctx context.Context) ([]*models.Student, error)
	GetStudent(ctx context.Context, id models.ID) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	ReplaceStudent(ctx context.Context, id models.ID, in models.StudentInput) (*models.Student, error)
	DeleteStudent(ctx context.Context, id models.ID) error

	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id models.ID) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	ReplaceCourse(ctx context.Context, id models.ID, in models.CourseInput) (*models.Course, error)
	DeleteCourse(ctx context.Context, id models.ID) error

	ListEnrollments(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error)
	GetEnrollment(ctx context.Context, id models.ID) (*models.Enrollment, error)
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	ReplaceEnrollment(ctx context.Context, id models.ID, in models.EnrollmentInput) (*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id models.ID) error
}
