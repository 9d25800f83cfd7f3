package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/scms/internal/services"
)

const (
	RosterSheet     = "Roster"
	TranscriptSheet = "Transcript"
)

var (
	rosterHeader     = []interface{}{"Student", "Reg No", "Email", "Grade"}
	transcriptHeader = []interface{}{"Course", "Code", "Credits", "Grade"}
)

// WriteDetail writes the enrollment table of a detail view as an xlsx workbook.
// A course view becomes a roster, a student view a transcript.
func WriteDetail(w io.Writer, view *services.DetailView, logger *slog.Logger) error {
	sheet, header := TranscriptSheet, transcriptHeader
	if view.Mode == services.ModeByCourse {
		sheet, header = RosterSheet, rosterHeader
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := styleHeader(f, sheet, len(header)); err != nil {
		return err
	}

	rows := view.Rows()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := []interface{}{row.Name, row.Code, row.Detail, row.GradeLabel}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "C", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("Exported enrollments", "sheet", sheet, "subject", view.Title(), "rows", len(rows))
	return nil
}

func styleHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}
