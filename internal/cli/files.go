package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/SAP-F-2025/scms/internal/export"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/services"
)

// export writes a course roster or a student transcript workbook
func (a *App) export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("export: missing roster or transcript")
	}

	var mode services.Mode
	switch args[0] {
	case "roster":
		mode = services.ModeByCourse
	case "transcript":
		mode = services.ModeByStudent
	default:
		return usagef("export: unknown workbook %q", args[0])
	}

	command := "export " + args[0]
	ids, rest, err := leadingArgs(command, args[1:], string(mode.Kind())+" id")
	if err != nil {
		return err
	}
	fs := newFlags(command)
	output := fs.String("o", "", "output file")
	if err := parseFlags(fs, rest); err != nil {
		return err
	}

	view, err := a.loadDetail(ctx, mode, models.ID(ids[0]))
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = defaultWorkbookName(view)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteDetail(f, view, a.logger); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	a.presenter.Success("Exported %d enrollments to %s.", len(view.Enrollments), path)
	return nil
}

func defaultWorkbookName(view *services.DetailView) string {
	if view.Mode == services.ModeByCourse {
		return fmt.Sprintf("roster-%s.xlsx", view.SubjectID())
	}
	return fmt.Sprintf("transcript-%s.xlsx", view.SubjectID())
}

// importFile creates students from the first sheet of a workbook
func (a *App) importFile(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "students" {
		return usagef("import: only students can be imported")
	}

	paths, rest, err := leadingArgs("import students", args[1:], "workbook path")
	if err != nil {
		return err
	}
	if err := parseFlags(newFlags("import students"), rest); err != nil {
		return err
	}

	f, err := os.Open(paths[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", paths[0], err)
	}
	defer f.Close()

	result, err := export.ImportStudents(ctx, f, a.services.Student(), a.logger)
	if result != nil {
		for _, skipped := range result.Skipped {
			a.presenter.Warn("Skipped row %d: %s", skipped.Row, skipped.Reason)
		}
	}
	if err != nil {
		return err
	}

	a.presenter.Success("Imported %d students.", len(result.Imported))
	return nil
}
