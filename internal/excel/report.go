package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vrevia/vrevia-back/internal/models"
)

// BuildStudentReport writes the roster to one sheet of a workbook.
func BuildStudentReport(students []models.Student) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Students"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Last name", "First name", "Phone", "Active", "Current lesson", "Level", "Modules", "Group ID"}
	for i, hvalue := range headers {
		cell, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s1", cell), hvalue); err != nil {
			return nil, err
		}
	}

	for row, s := range students {
		groupID := ""
		if s.GroupID != nil {
			groupID = fmt.Sprintf("%d", *s.GroupID)
		}
		values := []interface{}{
			s.ID, s.LastName, s.FirstName, s.Phone, s.Active,
			s.CurrentLesson, s.CurrentLevel, s.Modules, groupID,
		}
		for col, v := range values {
			cell, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", cell, row+2), v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// BuildPaymentReport writes payments to one sheet, newest period first.
func BuildPaymentReport(payments []models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Payments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Student ID", "Period", "Amount (KZT)", "Method", "Status", "Paid at"}
	for i, hvalue := range headers {
		cell, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s1", cell), hvalue); err != nil {
			return nil, err
		}
	}

	for row, p := range payments {
		paidAt := ""
		if p.PaidAt != nil {
			paidAt = p.PaidAt.Format(time.RFC3339)
		}
		values := []interface{}{p.ID, p.StudentID, p.Period, p.Amount, p.Method, p.Status, paidAt}
		for col, v := range values {
			cell, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", cell, row+2), v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
