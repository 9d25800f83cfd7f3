package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

const (
	studentsCollection    = "students"
	coursesCollection     = "courses"
	enrollmentsCollection = "enrollments"
)

// Request bodies. Create bodies have no id field at all; replace bodies echo the id.

func studentCreateBody(in models.StudentInput) models.StudentInput {
	return models.NewStudentInput(in.RegNo, in.Name, in.Email, in.Year)
}

func studentReplaceBody(id models.ID, in models.StudentInput) models.Student {
	return studentCreateBody(in).Record(id)
}

func courseCreateBody(in models.CourseInput) models.CourseInput {
	return models.NewCourseInput(in.Code, in.Title, in.Credits)
}

func courseReplaceBody(id models.ID, in models.CourseInput) models.Course {
	return courseCreateBody(in).Record(id)
}

func enrollmentCreateBody(in models.EnrollmentInput) models.EnrollmentInput {
	return models.NewEnrollmentInput(in.StudentID, in.CourseID, in.Grade)
}

func enrollmentReplaceBody(id models.ID, in models.EnrollmentInput) models.Enrollment {
	return enrollmentCreateBody(in).Record(id)
}

func enrollmentQuery(filters repositories.EnrollmentFilters) url.Values {
	filters = filters.Normalize()
	query := url.Values{}
	if filters.StudentID != "" {
		query.Set("studentId", filters.StudentID.String())
	}
	if filters.CourseID != "" {
		query.Set("courseId", filters.CourseID.String())
	}
	return query
}

// ===== STUDENTS =====

type studentClient struct {
	client *Client
}

func (r *studentClient) List(ctx context.Context) ([]*models.Student, error) {
	var out []*models.Student
	if err := r.client.do(ctx, http.MethodGet, collectionPath(studentsCollection), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *studentClient) GetByID(ctx context.Context, id models.ID) (*models.Student, error) {
	var out models.Student
	if err := r.client.do(ctx, http.MethodGet, itemPath(studentsCollection, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *studentClient) Create(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	var out models.Student
	if err := r.client.do(ctx, http.MethodPost, collectionPath(studentsCollection), nil, studentCreateBody(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *studentClient) Insert(ctx context.Context, student *models.Student) (*models.Student, error) {
	var out models.Student
	body := studentReplaceBody(student.ID, student.Input())
	if err := r.client.do(ctx, http.MethodPost, collectionPath(studentsCollection), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *studentClient) Replace(ctx context.Context, id models.ID, in models.StudentInput) (*models.Student, error) {
	var out models.Student
	if err := r.client.do(ctx, http.MethodPut, itemPath(studentsCollection, id), nil, studentReplaceBody(id, in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *studentClient) Delete(ctx context.Context, id models.ID) error {
	return r.client.do(ctx, http.MethodDelete, itemPath(studentsCollection, id), nil, nil, nil)
}

// ===== COURSES =====

type courseClient struct {
	client *Client
}

func (r *courseClient) List(ctx context.Context) ([]*models.Course, error) {
	var out []*models.Course
	if err := r.client.do(ctx, http.MethodGet, collectionPath(coursesCollection), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseClient) GetByID(ctx context.Context, id models.ID) (*models.Course, error) {
	var out models.Course
	if err := r.client.do(ctx, http.MethodGet, itemPath(coursesCollection, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *courseClient) Create(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	var out models.Course
	if err := r.client.do(ctx, http.MethodPost, collectionPath(coursesCollection), nil, courseCreateBody(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *courseClient) Insert(ctx context.Context, course *models.Course) (*models.Course, error) {
	var out models.Course
	body := courseReplaceBody(course.ID, course.Input())
	if err := r.client.do(ctx, http.MethodPost, collectionPath(coursesCollection), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *courseClient) Replace(ctx context.Context, id models.ID, in models.CourseInput) (*models.Course, error) {
	var out models.Course
	if err := r.client.do(ctx, http.MethodPut, itemPath(coursesCollection, id), nil, courseReplaceBody(id, in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *courseClient) Delete(ctx context.Context, id models.ID) error {
	return r.client.do(ctx, http.MethodDelete, itemPath(coursesCollection, id), nil, nil, nil)
}

// ===== ENROLLMENTS =====

type enrollmentClient struct {
	client *Client
}

func (r *enrollmentClient) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	if err := r.client.do(ctx, http.MethodGet, collectionPath(enrollmentsCollection), enrollmentQuery(filters), nil, &out); err != nil {
		return nil, err
	}
	for i, e := range out {
		normalized := e.Normalize()
		out[i] = &normalized
	}
	return out, nil
}

func (r *enrollmentClient) GetByID(ctx context.Context, id models.ID) (*models.Enrollment, error) {
	var out models.Enrollment
	if err := r.client.do(ctx, http.MethodGet, itemPath(enrollmentsCollection, id), nil, nil, &out); err != nil {
		return nil, err
	}
	out = out.Normalize()
	return &out, nil
}

func (r *enrollmentClient) Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error) {
	var out models.Enrollment
	if err := r.client.do(ctx, http.MethodPost, collectionPath(enrollmentsCollection), nil, enrollmentCreateBody(in), &out); err != nil {
		return nil, err
	}
	out = out.Normalize()
	return &out, nil
}

func (r *enrollmentClient) Insert(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	var out models.Enrollment
	body := enrollmentReplaceBody(enrollment.ID, enrollment.Input())
	if err := r.client.do(ctx, http.MethodPost, collectionPath(enrollmentsCollection), nil, body, &out); err != nil {
		return nil, err
	}
	out = out.Normalize()
	return &out, nil
}

func (r *enrollmentClient) Replace(ctx context.Context, id models.ID, in models.EnrollmentInput) (*models.Enrollment, error) {
	var out models.Enrollment
	if err := r.client.do(ctx, http.MethodPut, itemPath(enrollmentsCollection, id), nil, enrollmentReplaceBody(id, in), &out); err != nil {
		return nil, err
	}
	out = out.Normalize()
	return &out, nil
}

func (r *enrollmentClient) Delete(ctx context.Context, id models.ID) error {
	return r.client.do(ctx, http.MethodDelete, itemPath(enrollmentsCollection, id), nil, nil, nil)
}
