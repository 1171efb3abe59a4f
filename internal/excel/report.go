// Package excel renders the portal's downloadable workbooks: the admin
// allocation summary, bulk-upload templates, and the batch project report.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/egspgoi/projectverse/internal/models"
)

const sheet = "Sheet1"

func writeHeader(f *excelize.File, cells []string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, label := range cells {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, col+"1", label); err != nil {
			return err
		}
	}
	last, _ := excelize.ColumnNumberToName(len(cells))
	return f.SetCellStyle(sheet, "A1", last+"1", style)
}

// WriteAllocationSummary writes one row per batch with its selection
// status. This is the admin's export of the whole allocation run.
func WriteAllocationSummary(w io.Writer, batches []models.Batch) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []string{"Batch Name", "Username", "Department", "Students", "Project", "Coordinator", "Locked"}
	if err := writeHeader(f, header); err != nil {
		return err
	}

	for i, b := range batches {
		row := i + 2
		project := "Not Selected"
		coordinator := ""
		if b.Project != nil {
			project = b.Project.Title
		}
		if b.Coordinator != nil {
			coordinator = b.Coordinator.Name
		}
		values := []any{b.BatchName, b.Username, b.Department, len(b.Students), project, coordinator, b.IsLocked}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// WriteBatchReport writes the locked batch's report: project header plus
// the student roster.
func WriteBatchReport(w io.Writer, report *models.BatchReport) error {
	f := excelize.NewFile()
	defer f.Close()

	meta := [][2]any{
		{"Batch Name", report.BatchName},
		{"Department", report.Department},
		{"Project", report.Project},
	}
	for i, kv := range meta {
		row := i + 1
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kv[1]); err != nil {
			return err
		}
	}

	header := []string{"#", "Name", "Roll Number", "Dept", "Section", "Year", "Email", "Phone"}
	headerRow := len(meta) + 2
	for i, label := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, headerRow), label); err != nil {
			return err
		}
	}

	for i, s := range report.Students {
		row := headerRow + i + 1
		values := []any{i + 1, s.NameInitial, s.RollNumber, s.Dept, s.Section, s.Year, s.MailID, s.Phone}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// Bulk-upload template headers per entity. The remote service owns the
// row semantics; the template only spares admins the column guessing.
var templateHeaders = map[string][]string{
	"faculty":            {"name", "email", "password", "department", "quotaLimit"},
	"batch":              {"batchName", "username", "password", "department"},
	"problem-statements": {"title", "description", "gDriveLink", "department", "domain", "facultyEmail"},
}

// WriteBulkTemplate writes an empty header-only workbook for one bulk
// upload entity. Unknown entities get an error, not an empty file.
func WriteBulkTemplate(w io.Writer, entity string) error {
	header, ok := templateHeaders[entity]
	if !ok {
		return fmt.Errorf("no bulk template for entity %q", entity)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeHeader(f, header); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
