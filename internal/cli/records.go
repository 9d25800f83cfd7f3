package cli

import (
	"context"

	"github.com/SAP-F-2025/scms/internal/models"
)

func (a *App) students(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("students: missing subcommand")
	}

	switch args[0] {
	case "list":
		view, err := a.services.Student().List(ctx)
		if err != nil {
			return err
		}
		a.presenter.StudentList(view)
		return nil
	case "add":
		return a.addStudent(ctx, args[1:])
	case "edit":
		return a.editStudent(ctx, args[1:])
	case "delete":
		return a.deleteStudent(ctx, args[1:])
	default:
		return usagef("students: unknown subcommand %q", args[0])
	}
}

func (a *App) addStudent(ctx context.Context, args []string) error {
	fs := newFlags("students add")
	regNo := fs.String("reg", "", "registration number")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	year := fs.Int("year", 1, "year of study")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	student, err := a.services.Student().Create(ctx, models.StudentInput{
		RegNo: *regNo,
		Name:  *name,
		Email: *email,
		Year:  *year,
	})
	if err != nil {
		return err
	}

	a.presenter.Success("Student %s created.", student.ID)
	a.presenter.Student(student)
	return nil
}

// editStudent overlays the given flags on the stored student and replaces it
func (a *App) editStudent(ctx context.Context, args []string) error {
	ids, rest, err := leadingArgs("students edit", args, "student id")
	if err != nil {
		return err
	}

	fs := newFlags("students edit")
	regNo := fs.String("reg", "", "registration number")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	year := fs.Int("year", 0, "year of study")
	if err := parseFlags(fs, rest); err != nil {
		return err
	}

	current, err := a.services.Student().Get(ctx, models.ID(ids[0]))
	if err != nil {
		return err
	}

	in := models.StudentInput{RegNo: current.RegNo, Name: current.Name, Email: current.Email, Year: current.Year}
	given := flagSet(fs)
	if given["reg"] {
		in.RegNo = *regNo
	}
	if given["name"] {
		in.Name = *name
	}
	if given["email"] {
		in.Email = *email
	}
	if given["year"] {
		in.Year = *year
	}

	student, err := a.services.Student().Update(ctx, current.ID, in)
	if err != nil {
		return err
	}

	a.presenter.Success("Student %s updated.", student.ID)
	a.presenter.Student(student)
	return nil
}

func (a *App) deleteStudent(ctx context.Context, args []string) error {
	ids, rest, err := leadingArgs("students delete", args, "student id")
	if err != nil {
		return err
	}
	if err := parseFlags(newFlags("students delete"), rest); err != nil {
		return err
	}

	view, err := a.services.Student().List(ctx)
	if err != nil {
		return err
	}

	result, err := a.services.Student().Delete(ctx, view, models.ID(ids[0]))
	if err != nil {
		return err
	}

	a.presenter.Success("Student %s deleted with %d enrollments.", result.ParentID, result.EnrollmentsDeleted)
	a.presenter.StudentList(view)
	return nil
}

func (a *App) courses(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("courses: missing subcommand")
	}

	switch args[0] {
	case "list":
		view, err := a.services.Course().List(ctx)
		if err != nil {
			return err
		}
		a.presenter.CourseList(view)
		return nil
	case "add":
		return a.addCourse(ctx, args[1:])
	case "edit":
		return a.editCourse(ctx, args[1:])
	case "delete":
		return a.deleteCourse(ctx, args[1:])
	default:
		return usagef("courses: unknown subcommand %q", args[0])
	}
}

func (a *App) addCourse(ctx context.Context, args []string) error {
	fs := newFlags("courses add")
	code := fs.String("code", "", "course code")
	title := fs.String("title", "", "course title")
	credits := fs.Int("credits", 3, "credit points")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	course, err := a.services.Course().Create(ctx, models.CourseInput{
		Code:    *code,
		Title:   *title,
		Credits: *credits,
	})
	if err != nil {
		return err
	}

	a.presenter.Success("Course %s created.", course.ID)
	a.presenter.Course(course)
	return nil
}

func (a *App) editCourse(ctx context.Context, args []string) error {
	ids, rest, err := leadingArgs("courses edit", args, "course id")
	if err != nil {
		return err
	}

	fs := newFlags("courses edit")
	code := fs.String("code", "", "course code")
	title := fs.String("title", "", "course title")
	credits := fs.Int("credits", 0, "credit points")
	if err := parseFlags(fs, rest); err != nil {
		return err
	}

	current, err := a.services.Course().Get(ctx, models.ID(ids[0]))
	if err != nil {
		return err
	}

	in := models.CourseInput{Code: current.Code, Title: current.Title, Credits: current.Credits}
	given := flagSet(fs)
	if given["code"] {
		in.Code = *code
	}
	if given["title"] {
		in.Title = *title
	}
	if given["credits"] {
		in.Credits = *credits
	}

	course, err := a.services.Course().Update(ctx, current.ID, in)
	if err != nil {
		return err
	}

	a.presenter.Success("Course %s updated.", course.ID)
	a.presenter.Course(course)
	return nil
}

func (a *App) deleteCourse(ctx context.Context, args []string) error {
	ids, rest, err := leadingArgs("courses delete", args, "course id")
	if err != nil {
		return err
	}
	if err := parseFlags(newFlags("courses delete"), rest); err != nil {
		return err
	}

	view, err := a.services.Course().List(ctx)
	if err != nil {
		return err
	}

	result, err := a.services.Course().Delete(ctx, view, models.ID(ids[0]))
	if err != nil {
		return err
	}

	a.presenter.Success("Course %s deleted with %d enrollments.", result.ParentID, result.EnrollmentsDeleted)
	a.presenter.CourseList(view)
	return nil
}
