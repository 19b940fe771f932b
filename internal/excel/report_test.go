package excel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrevia/vrevia-back/internal/models"
)

func TestBuildStudentReport(t *testing.T) {
	students := []models.Student{
		{ID: 1, FirstName: "Aigerim", LastName: "Seitova", Active: true, CurrentLesson: 31, CurrentLevel: "a2", Modules: "school,english"},
		{ID: 2, FirstName: "Daniyar", LastName: "Akhmetov", Active: false, CurrentLesson: 150, CurrentLevel: "b2plus", Modules: "school"},
	}

	f, err := BuildStudentReport(students)
	require.NoError(t, err)

	got, err := f.GetCellValue("Students", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", got)

	got, err = f.GetCellValue("Students", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Seitova", got)

	got, err = f.GetCellValue("Students", "G3")
	require.NoError(t, err)
	assert.Equal(t, "b2plus", got)
}

func TestBuildPaymentReport(t *testing.T) {
	paidAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	payments := []models.Payment{
		{ID: 7, StudentID: 1, Period: "2026-08", Amount: 45000, Method: "card", Status: models.PaymentPaid, PaidAt: &paidAt},
	}

	f, err := BuildPaymentReport(payments)
	require.NoError(t, err)

	got, err := f.GetCellValue("Payments", "C2")
	require.NoError(t, err)
	assert.Equal(t, "2026-08", got)

	got, err = f.GetCellValue("Payments", "F2")
	require.NoError(t, err)
	assert.Equal(t, "paid", got)
}
