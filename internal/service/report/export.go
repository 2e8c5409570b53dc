package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/report"
)

// sheetName reduces a department label to a legal worksheet name: letters and
// digits only, at most 31 characters.
func sheetName(department string) string {
	var b []rune
	for _, r := range department {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b = append(b, r)
		}
		if len(b) == 31 {
			break
		}
	}
	if len(b) == 0 {
		return "Department"
	}
	return string(b)
}

// ExportXLSX implements report.ReportService.
func (s *ReportServiceImpl) ExportXLSX(ctx context.Context, month time.Time) ([]byte, error) {
	grid, err := s.MonthlyGrid(ctx, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build header style: %w", err)
	}

	for i, dept := range grid.Departments {
		sheet := sheetName(dept.Department)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		if err := writeDepartmentSheet(f, sheet, headerStyle, grid, dept); err != nil {
			return nil, err
		}
	}

	// A month with no staff still yields a valid workbook.
	if len(grid.Departments) == 0 {
		f.SetSheetName("Sheet1", "Empty")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDepartmentSheet(f *excelize.File, sheet string, headerStyle int, grid report.MonthlyReport, dept report.DepartmentGrid) error {
	title := fmt.Sprintf("Attendance Report %s — %s", grid.MonthLabel, dept.Department)
	if err := writeCell(f, sheet, 1, 1, title); err != nil {
		return err
	}

	headerRow := 2
	headers := []string{"NIP", "Name"}
	for day := 1; day <= grid.DaysInMonth; day++ {
		headers = append(headers, strconv.Itoa(day))
	}
	headers = append(headers, report.AllCodes...)

	for col, h := range headers {
		if err := writeCell(f, sheet, col+1, headerRow, h); err != nil {
			return err
		}
	}

	first, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), headerRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return err
	}

	row := headerRow
	for _, staff := range dept.Staff {
		row++
		if err := writeCell(f, sheet, 1, row, staff.NIP); err != nil {
			return err
		}
		if err := writeCell(f, sheet, 2, row, staff.Name); err != nil {
			return err
		}
		for day := 1; day <= grid.DaysInMonth; day++ {
			if code, ok := staff.Codes[day]; ok {
				if err := writeCell(f, sheet, 2+day, row, code); err != nil {
					return err
				}
			}
		}
		for j, code := range report.AllCodes {
			if err := writeCell(f, sheet, 2+grid.DaysInMonth+j+1, row, staff.Totals[code]); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 28)
}

func writeCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
