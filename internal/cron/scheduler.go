package cron

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vrevia/vrevia-back/internal/config"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/excel"
)

// StartJobs schedules the nightly report build. Reporting only: no job
// mutates student progress or subscription state.
func StartJobs(cfg *config.Config) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@daily", func() { buildDailyReports(cfg) }); err != nil {
		log.Fatalf("failed to schedule report job: %v", err)
	}

	c.Start()
	log.Println("✅ Cron jobs started")
	return c
}

func buildDailyReports(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		log.Printf("report dir: %v", err)
		return
	}
	stamp := time.Now().Format("2006-01-02")

	students, err := db.ListStudents(ctx)
	if err != nil {
		log.Printf("student report: %v", err)
		return
	}
	sf, err := excel.BuildStudentReport(students)
	if err != nil {
		log.Printf("student report: %v", err)
		return
	}
	defer sf.Close()
	sPath := filepath.Join(cfg.ReportDir, fmt.Sprintf("students-%s.xlsx", stamp))
	if err := sf.SaveAs(sPath); err != nil {
		log.Printf("student report: %v", err)
		return
	}

	payments, err := db.ListPayments(ctx, 0)
	if err != nil {
		log.Printf("payment report: %v", err)
		return
	}
	pf, err := excel.BuildPaymentReport(payments)
	if err != nil {
		log.Printf("payment report: %v", err)
		return
	}
	defer pf.Close()
	pPath := filepath.Join(cfg.ReportDir, fmt.Sprintf("payments-%s.xlsx", stamp))
	if err := pf.SaveAs(pPath); err != nil {
		log.Printf("payment report: %v", err)
		return
	}

	log.Printf("daily reports written: %s, %s", sPath, pPath)
}
