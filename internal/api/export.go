package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/excel"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(c *gin.Context, f *excelize.File, prefix string) {
	name := fmt.Sprintf("%s-%s.xlsx", prefix, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if _, err := f.WriteTo(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
	}
}

// ExportStudents godoc
// @Summary      Download the student roster as xlsx
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /admin/export/students [get]
func ExportStudents(c *gin.Context) {
	students, err := db.ListStudents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}
	f, err := excel.BuildStudentReport(students)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	defer f.Close()
	writeWorkbook(c, f, "students")
}

// ExportPayments godoc
// @Summary      Download the payment ledger as xlsx
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /admin/export/payments [get]
func ExportPayments(c *gin.Context) {
	payments, err := db.ListPayments(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	f, err := excel.BuildPaymentReport(payments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	defer f.Close()
	writeWorkbook(c, f, "payments")
}
