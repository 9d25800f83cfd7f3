package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/services"
)

// SkippedRow is a sheet row that was not imported. Row is 1-based as shown in spreadsheet tools.
type SkippedRow struct {
	Row    int
	Reason string
}

// StudentRow is a readable sheet row with its 1-based row number
type StudentRow struct {
	Row   int
	Input models.StudentInput
}

// ImportResult summarises a student import
type ImportResult struct {
	Imported []*models.Student
	Skipped  []SkippedRow
}

// ReadStudents parses the first sheet: Reg No, Name, Email and an optional Year.
// The first row is a header. Incomplete rows are skipped and reported.
func ReadStudents(r io.Reader, logger *slog.Logger) ([]StudentRow, []SkippedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheet, err)
	}

	var (
		students []StudentRow
		skipped  []SkippedRow
	)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNumber := i + 1

		regNo, name, email := cell(row, 0), cell(row, 1), cell(row, 2)
		if regNo == "" && name == "" && email == "" {
			continue
		}
		if regNo == "" || name == "" || email == "" {
			logger.Warn("Skipping incomplete row", "row", rowNumber)
			skipped = append(skipped, SkippedRow{Row: rowNumber, Reason: services.MsgStudentRequired})
			continue
		}

		year := 0
		if raw := cell(row, 3); raw != "" {
			year, err = strconv.Atoi(raw)
			if err != nil {
				logger.Warn("Skipping row with invalid year", "row", rowNumber, "year", raw)
				skipped = append(skipped, SkippedRow{Row: rowNumber, Reason: fmt.Sprintf("invalid year %q", raw)})
				continue
			}
		}

		students = append(students, StudentRow{
			Row:   rowNumber,
			Input: models.NewStudentInput(regNo, name, email, year).WithDefaults(),
		})
	}

	return students, skipped, nil
}

// ImportStudents creates every readable student through the student service.
// Rows the service rejects as invalid are skipped; any other failure stops the import.
func ImportStudents(ctx context.Context, r io.Reader, students services.StudentService, logger *slog.Logger) (*ImportResult, error) {
	rows, skipped, err := ReadStudents(r, logger)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Skipped: skipped}
	for _, row := range rows {
		student, err := students.Create(ctx, row.Input)
		if services.IsValidationError(err) {
			logger.Warn("Skipping invalid student", "row", row.Row, "reg_no", row.Input.RegNo, "error", err)
			result.Skipped = append(result.Skipped, SkippedRow{Row: row.Row, Reason: fmt.Sprintf("%s: %v", row.Input.RegNo, err)})
			continue
		}
		if err != nil {
			return result, fmt.Errorf("import stopped after %d students: %w", len(result.Imported), err)
		}
		result.Imported = append(result.Imported, student)
	}

	logger.Info("Imported students", "imported", len(result.Imported), "skipped", len(result.Skipped))
	return result, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
