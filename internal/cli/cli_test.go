package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/scms/internal/config"
	"github.com/SAP-F-2025/scms/internal/handlers"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/repositories/memory"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
	"github.com/SAP-F-2025/scms/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	color.NoColor = true
}

// storeFixture runs the HTTP relation store over an in-memory store
type storeFixture struct {
	store *memory.Store
	cfg   *config.Config
}

func newStoreFixture(t *testing.T, snapshot models.Snapshot) *storeFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	if _, err := repositories.Seed(context.Background(), store, snapshot, logger); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	sm := services.NewDefaultServiceManager(store, logger, validator.New())
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	server := httptest.NewServer(handlers.NewRouter(sm, utils.NewSlogLogger(logger), config.CasdoorConfig{}))
	t.Cleanup(server.Close)

	return &storeFixture{
		store: store,
		cfg: &config.Config{
			LogLevel: slog.LevelInfo,
			Client:   config.ClientConfig{BaseURL: server.URL, Timeout: 5 * time.Second, CascadeConcurrency: 2},
		},
	}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (f *storeFixture) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, f.cfg)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func scenario() models.Snapshot {
	return models.Snapshot{
		Students: []models.Student{{ID: "s1", RegNo: "SCMS/001", Name: "Ada Lovelace", Email: "ada@uni.edu", Year: 2}},
		Courses:  []models.Course{{ID: "c1", Code: "DS101", Title: "Data Structures", Credits: 4}},
	}
}

func TestRun_EnrollGradeAndCascadeDelete(t *testing.T) {
	f := newStoreFixture(t, scenario())

	res := f.run(t, "", "enroll", "-student", "s1", "-course", "c1")
	if res.code != 0 {
		t.Fatalf("enroll exit = %d, stderr = %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "Enrolled Courses (1)") || !strings.Contains(res.stdout, "Not set") {
		t.Errorf("enroll output missing the new row:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, services.MsgNoCoursesAvailable) {
		t.Errorf("enroll output should show no remaining options:\n%s", res.stdout)
	}

	snapshot := f.store.Snapshot()
	if len(snapshot.Enrollments) != 1 {
		t.Fatalf("store has %d enrollments, want 1", len(snapshot.Enrollments))
	}
	enrollment := snapshot.Enrollments[0]
	if enrollment.StudentID != "s1" || enrollment.CourseID != "c1" || enrollment.Grade != models.GradeNotSet {
		t.Fatalf("stored enrollment = %+v", enrollment)
	}

	res = f.run(t, "", "grade", enrollment.ID.String(), "a")
	if res.code != 0 {
		t.Fatalf("grade exit = %d, stderr = %s", res.code, res.stderr)
	}
	if strings.Contains(res.stdout, "Not set") {
		t.Errorf("grade output still shows the old grade:\n%s", res.stdout)
	}

	graded := f.store.Snapshot().Enrollments
	if len(graded) != 1 || graded[0].ID != enrollment.ID || graded[0].Grade != models.GradeA {
		t.Fatalf("after grade store has %+v", graded)
	}
	if graded[0].StudentID != "s1" || graded[0].CourseID != "c1" {
		t.Errorf("grade changed the pair: %+v", graded[0])
	}

	res = f.run(t, "y\n", "courses", "delete", "c1")
	if res.code != 0 {
		t.Fatalf("delete exit = %d, stderr = %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, services.PromptDeleteCourse) {
		t.Errorf("delete did not prompt:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, services.MsgNoCourses) {
		t.Errorf("course listing should be empty:\n%s", res.stdout)
	}

	final := f.store.Snapshot()
	if len(final.Courses) != 0 || len(final.Enrollments) != 0 {
		t.Errorf("after cascade store has %d courses and %d enrollments", len(final.Courses), len(final.Enrollments))
	}

	res = f.run(t, "", "student", "s1")
	if res.code != 0 {
		t.Fatalf("student exit = %d, stderr = %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, services.MsgNoEnrollments) {
		t.Errorf("student detail should show no enrollments:\n%s", res.stdout)
	}
}

func TestRun_EnrollTwiceIsRejected(t *testing.T) {
	f := newStoreFixture(t, scenario())

	if res := f.run(t, "", "enroll", "-student", "s1", "-course", "c1", "-grade", "B"); res.code != 0 {
		t.Fatalf("first enroll exit = %d, stderr = %s", res.code, res.stderr)
	}

	res := f.run(t, "", "enroll", "-by", "course", "-course", "c1", "-student", "s1")
	if res.code != 1 {
		t.Fatalf("second enroll exit = %d, want 1", res.code)
	}
	if !strings.Contains(res.stderr, "already enrolled") {
		t.Errorf("stderr = %q", res.stderr)
	}
	if n := len(f.store.Snapshot().Enrollments); n != 1 {
		t.Errorf("store has %d enrollments, want 1", n)
	}
}

func TestRun_DeclinedDeleteKeepsRecords(t *testing.T) {
	snapshot := scenario()
	snapshot.Enrollments = []models.Enrollment{{ID: "e1", StudentID: "s1", CourseID: "c1"}}
	f := newStoreFixture(t, snapshot)

	res := f.run(t, "n\n", "students", "delete", "s1")
	if res.code != 0 {
		t.Fatalf("exit = %d, stderr = %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stderr, "Cancelled.") {
		t.Errorf("stderr = %q", res.stderr)
	}

	final := f.store.Snapshot()
	if len(final.Students) != 1 || len(final.Enrollments) != 1 {
		t.Errorf("declined delete changed the store: %+v", final)
	}
}

func TestRun_YesFlagSkipsPrompt(t *testing.T) {
	snapshot := scenario()
	snapshot.Enrollments = []models.Enrollment{{ID: "e1", StudentID: "s1", CourseID: "c1"}}
	f := newStoreFixture(t, snapshot)

	res := f.run(t, "", "-y", "students", "delete", "s1")
	if res.code != 0 {
		t.Fatalf("exit = %d, stderr = %s", res.code, res.stderr)
	}
	if strings.Contains(res.stdout, "[y/N]") {
		t.Errorf("-y still prompted:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "deleted with 1 enrollments") {
		t.Errorf("stdout = %s", res.stdout)
	}

	final := f.store.Snapshot()
	if len(final.Students) != 0 || len(final.Enrollments) != 0 {
		t.Errorf("store after delete: %+v", final)
	}
}

func TestRun_StudentsAddAndEdit(t *testing.T) {
	f := newStoreFixture(t, scenario())

	res := f.run(t, "", "students", "add", "-reg", "SCMS/002", "-name", "Alan Turing", "-email", "alan@uni.edu", "-year", "3")
	if res.code != 0 {
		t.Fatalf("add exit = %d, stderr = %s", res.code, res.stderr)
	}

	res = f.run(t, "", "students", "edit", "s1", "-year", "4")
	if res.code != 0 {
		t.Fatalf("edit exit = %d, stderr = %s", res.code, res.stderr)
	}

	students := f.store.Snapshot().Students
	if len(students) != 2 {
		t.Fatalf("store has %d students, want 2", len(students))
	}
	for _, s := range students {
		if s.ID == "s1" && (s.Year != 4 || s.Name != "Ada Lovelace") {
			t.Errorf("edit should only change the year: %+v", s)
		}
	}

	res = f.run(t, "", "students", "add", "-reg", "SCMS/003")
	if res.code != 1 || !strings.Contains(res.stderr, services.MsgStudentRequired) {
		t.Errorf("incomplete add: exit = %d, stderr = %q", res.code, res.stderr)
	}
}

func TestRun_CoursesListAndEdit(t *testing.T) {
	f := newStoreFixture(t, scenario())

	res := f.run(t, "", "courses", "edit", "c1", "-credits", "5")
	if res.code != 0 {
		t.Fatalf("edit exit = %d, stderr = %s", res.code, res.stderr)
	}

	res = f.run(t, "", "courses", "list")
	if res.code != 0 {
		t.Fatalf("list exit = %d, stderr = %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "DS101") || !strings.Contains(res.stdout, "5") {
		t.Errorf("listing = %s", res.stdout)
	}
}

func TestRun_Unenroll(t *testing.T) {
	snapshot := scenario()
	snapshot.Enrollments = []models.Enrollment{{ID: "e1", StudentID: "s1", CourseID: "c1", Grade: models.GradeC}}
	f := newStoreFixture(t, snapshot)

	res := f.run(t, "yes\n", "unenroll", "e1")
	if res.code != 0 {
		t.Fatalf("exit = %d, stderr = %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, services.PromptRemoveCourse) {
		t.Errorf("missing prompt:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "DS101") {
		t.Errorf("course should be offered again:\n%s", res.stdout)
	}
	if n := len(f.store.Snapshot().Enrollments); n != 0 {
		t.Errorf("store has %d enrollments, want 0", n)
	}
}

func TestRun_DanglingStudentEnrollment(t *testing.T) {
	snapshot := scenario()
	snapshot.Enrollments = []models.Enrollment{{ID: "e9", StudentID: "gone", CourseID: "c1"}}
	f := newStoreFixture(t, snapshot)

	res := f.run(t, "", "course", "c1")
	if res.code != 0 || !strings.Contains(res.stdout, services.UnknownStudent) {
		t.Fatalf("course page exit = %d, stdout:\n%s", res.code, res.stdout)
	}

	res = f.run(t, "", "grade", "e9", "A")
	if res.code != 0 {
		t.Fatalf("grade exit = %d, stderr = %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, services.UnknownStudent) {
		t.Errorf("grade should show the course page:\n%s", res.stdout)
	}
	graded := f.store.Snapshot().Enrollments
	if len(graded) != 1 || graded[0].ID != "e9" || graded[0].Grade != models.GradeA || graded[0].StudentID != "gone" {
		t.Fatalf("after grade store has %+v", graded)
	}

	res = f.run(t, "", "-y", "unenroll", "e9")
	if res.code != 0 {
		t.Fatalf("unenroll exit = %d, stderr = %s", res.code, res.stderr)
	}
	if n := len(f.store.Snapshot().Enrollments); n != 0 {
		t.Errorf("store has %d enrollments, want 0", n)
	}
}

func TestRun_ExportRoster(t *testing.T) {
	snapshot := scenario()
	snapshot.Enrollments = []models.Enrollment{{ID: "e1", StudentID: "s1", CourseID: "c1", Grade: models.GradeA}}
	f := newStoreFixture(t, snapshot)

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	res := f.run(t, "", "export", "roster", "c1", "-o", path)
	if res.code != 0 {
		t.Fatalf("exit = %d, stderr = %s", res.code, res.stderr)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Roster")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "Ada Lovelace" || rows[1][3] != "A" {
		t.Errorf("rows = %v", rows)
	}
}

func TestRun_ImportStudents(t *testing.T) {
	f := newStoreFixture(t, scenario())

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	for i, row := range [][]interface{}{
		{"Reg No", "Name", "Email", "Year"},
		{"SCMS/010", "Grace Hopper", "grace@uni.edu", 1},
		{"SCMS/011", "", "", 2},
	} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "students.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	wb.Close()

	res := f.run(t, "", "import", "students", path)
	if res.code != 0 {
		t.Fatalf("exit = %d, stderr = %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "Imported 1 students.") {
		t.Errorf("stdout = %s", res.stdout)
	}
	if !strings.Contains(res.stderr, "Skipped row 3") {
		t.Errorf("stderr = %s", res.stderr)
	}
	if n := len(f.store.Snapshot().Students); n != 2 {
		t.Errorf("store has %d students, want 2", n)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	f := newStoreFixture(t, scenario())

	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "no command", args: nil, code: 2},
		{name: "unknown command", args: []string{"frobnicate"}, code: 2},
		{name: "missing id", args: []string{"student"}, code: 2},
		{name: "bad flag", args: []string{"students", "add", "-nope"}, code: 2},
		{name: "bad mode", args: []string{"enroll", "-by", "department"}, code: 2},
		{name: "invalid grade", args: []string{"grade", "e1", "Z"}, code: 1},
		{name: "unknown student", args: []string{"student", "nobody"}, code: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.run(t, "", tt.args...)
			if res.code != tt.code {
				t.Errorf("exit = %d, want %d (stderr %q)", res.code, tt.code, res.stderr)
			}
		})
	}
}

func TestRun_StoreUnreachable(t *testing.T) {
	cfg := &config.Config{Client: config.ClientConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}}

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"students", "list"}, strings.NewReader(""), &stdout, &stderr, cfg)
	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
