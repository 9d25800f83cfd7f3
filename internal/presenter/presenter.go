package presenter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/services"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	sectionColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	mutedColor   = color.New(color.Faint)
)

// Presenter renders listings and detail pages as terminal tables
type Presenter struct {
	out    io.Writer
	errOut io.Writer
}

func New(out, errOut io.Writer) *Presenter {
	return &Presenter{out: out, errOut: errOut}
}

func (p *Presenter) StudentList(view *services.StudentListView) {
	headingColor.Fprintln(p.out, "Students")
	if view.Empty() {
		mutedColor.Fprintln(p.out, services.MsgNoStudents)
		return
	}

	table := p.table("ID", "Reg No", "Name", "Email", "Year")
	for _, s := range view.Students {
		table.Append([]string{s.ID.String(), s.RegNo, s.Name, s.Email, strconv.Itoa(s.Year)})
	}
	table.Render()
}

func (p *Presenter) CourseList(view *services.CourseListView) {
	headingColor.Fprintln(p.out, "Courses")
	if view.Empty() {
		mutedColor.Fprintln(p.out, services.MsgNoCourses)
		return
	}

	table := p.table("ID", "Code", "Title", "Credits")
	for _, c := range view.Courses {
		table.Append([]string{c.ID.String(), c.Code, c.Title, strconv.Itoa(c.Credits)})
	}
	table.Render()
}

// Detail renders a detail page: header, enrollment table and the enroll options
func (p *Presenter) Detail(view *services.DetailView) {
	headingColor.Fprintln(p.out, view.Title())
	fmt.Fprintln(p.out, view.Header())

	counterpart, enrollHeading, columns := "Courses", "Enroll to a Course", []string{"Enrollment", "Course", "Code", "Credits", "Grade"}
	if view.Mode == services.ModeByCourse {
		counterpart, enrollHeading, columns = "Students", "Enroll a Student", []string{"Enrollment", "Student", "Reg No", "Email", "Grade"}
	}

	rows := view.Rows()
	sectionColor.Fprintf(p.out, "\nEnrolled %s (%d)\n", counterpart, len(rows))
	if len(rows) == 0 {
		mutedColor.Fprintln(p.out, services.MsgNoEnrollments)
	} else {
		table := p.table(columns...)
		for _, row := range rows {
			table.Append([]string{row.EnrollmentID.String(), row.Name, row.Code, row.Detail, row.GradeLabel})
		}
		table.Render()
	}

	sectionColor.Fprintf(p.out, "\n%s\n", enrollHeading)
	options := view.Eligible()
	if len(options) == 0 {
		mutedColor.Fprintln(p.out, view.EmptyEligibleMessage())
		return
	}
	table := p.table("ID", "Option")
	for _, o := range options {
		table.Append([]string{o.ID.String(), o.Label})
	}
	table.Render()
}

func (p *Presenter) Student(s *models.Student) {
	headingColor.Fprintln(p.out, s.Name)
	fmt.Fprintf(p.out, "ID: %s • Reg No: %s • Email: %s • Year: %d\n", s.ID, s.RegNo, s.Email, s.Year)
}

func (p *Presenter) Course(c *models.Course) {
	headingColor.Fprintln(p.out, c.Title)
	fmt.Fprintf(p.out, "ID: %s • Code: %s • Credits: %d\n", c.ID, c.Code, c.Credits)
}

func (p *Presenter) Enrollment(e *models.Enrollment) {
	fmt.Fprintf(p.out, "Enrollment %s: student %s, course %s, grade %s\n", e.ID, e.StudentID, e.CourseID, e.Grade.Label())
}

func (p *Presenter) Success(format string, args ...interface{}) {
	successColor.Fprintf(p.out, format+"\n", args...)
}

func (p *Presenter) Warn(format string, args ...interface{}) {
	sectionColor.Fprintf(p.errOut, format+"\n", args...)
}

func (p *Presenter) Error(err error) {
	errorColor.Fprintf(p.errOut, "Error: %v\n", err)
}

func (p *Presenter) table(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}
