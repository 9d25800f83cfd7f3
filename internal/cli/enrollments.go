package cli

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/services"
)

func (a *App) detail(ctx context.Context, mode services.Mode, args []string) error {
	command := string(mode.Kind())
	ids, rest, err := leadingArgs(command, args, command+" id")
	if err != nil {
		return err
	}
	if err := parseFlags(newFlags(command), rest); err != nil {
		return err
	}

	view, err := a.loadDetail(ctx, mode, models.ID(ids[0]))
	if err != nil {
		return err
	}
	a.presenter.Detail(view)
	return nil
}

// enroll creates one enrollment from the subject's detail page, student side unless -by course
func (a *App) enroll(ctx context.Context, args []string) error {
	fs := newFlags("enroll")
	studentID := fs.String("student", "", "student id")
	courseID := fs.String("course", "", "course id")
	rawGrade := fs.String("grade", "", "initial grade")
	by := fs.String("by", "student", "detail page to enroll from: student or course")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		mode        services.Mode
		subjectID   string
		counterpart string
	)
	switch *by {
	case "student":
		mode, subjectID, counterpart = services.ModeByStudent, *studentID, *courseID
		if subjectID == "" {
			return services.NewValidationError(services.MsgSelectStudent, nil)
		}
	case "course":
		mode, subjectID, counterpart = services.ModeByCourse, *courseID, *studentID
		if subjectID == "" {
			return services.NewValidationError(services.MsgSelectCourse, nil)
		}
	default:
		return usagef("enroll: -by must be student or course, got %q", *by)
	}

	grade, err := parseGrade(*rawGrade)
	if err != nil {
		return err
	}

	view, err := a.loadDetail(ctx, mode, models.ID(subjectID))
	if err != nil {
		return err
	}

	enrollment, err := a.services.Enrollment().Enroll(ctx, view, models.ID(counterpart), grade)
	if err != nil {
		return err
	}

	a.presenter.Success("Enrolled (enrollment %s).", enrollment.ID)
	a.presenter.Detail(view)
	return nil
}

func (a *App) grade(ctx context.Context, args []string) error {
	positional, rest, err := leadingArgs("grade", args, "enrollment id", "grade")
	if err != nil {
		return err
	}
	if err := parseFlags(newFlags("grade"), rest); err != nil {
		return err
	}

	grade, err := parseGrade(positional[1])
	if err != nil {
		return err
	}

	view, enrollmentID, err := a.enrollmentView(ctx, models.ID(positional[0]))
	if err != nil {
		return err
	}

	updated, err := a.services.Enrollment().SetGrade(ctx, view, enrollmentID, grade)
	if err != nil {
		return err
	}

	a.presenter.Success("Grade of enrollment %s set to %s.", updated.ID, updated.Grade.Label())
	a.presenter.Detail(view)
	return nil
}

func (a *App) unenroll(ctx context.Context, args []string) error {
	ids, rest, err := leadingArgs("unenroll", args, "enrollment id")
	if err != nil {
		return err
	}
	if err := parseFlags(newFlags("unenroll"), rest); err != nil {
		return err
	}

	view, enrollmentID, err := a.enrollmentView(ctx, models.ID(ids[0]))
	if err != nil {
		return err
	}

	if err := a.services.Enrollment().Remove(ctx, view, enrollmentID); err != nil {
		return err
	}

	a.presenter.Success("Enrollment %s removed.", enrollmentID)
	a.presenter.Detail(view)
	return nil
}

// enrollmentView loads the student detail page an enrollment belongs to,
// or the course page when the student no longer exists
func (a *App) enrollmentView(ctx context.Context, id models.ID) (*services.DetailView, models.ID, error) {
	enrollment, err := a.services.Record().GetEnrollment(ctx, models.NormalizeID(id))
	if err != nil {
		return nil, "", err
	}

	view, err := a.loadDetail(ctx, services.ModeByStudent, enrollment.StudentID)
	if errors.Is(err, services.ErrNotFound) {
		a.logger.Info("Enrollment has a dangling student, using the course page",
			"enrollment_id", enrollment.ID, "student_id", enrollment.StudentID)
		view, err = a.loadDetail(ctx, services.ModeByCourse, enrollment.CourseID)
	}
	if err != nil {
		return nil, "", err
	}
	return view, models.NormalizeID(enrollment.ID), nil
}

func (a *App) loadDetail(ctx context.Context, mode services.Mode, id models.ID) (*services.DetailView, error) {
	if mode == services.ModeByCourse {
		return a.services.Enrollment().LoadCourseDetail(ctx, id)
	}
	return a.services.Enrollment().LoadStudentDetail(ctx, id)
}

func parseGrade(raw string) (models.Grade, error) {
	grade, err := models.ParseGrade(raw)
	if err != nil {
		return "", services.NewValidationError(err.Error(), nil)
	}
	return grade, nil
}
