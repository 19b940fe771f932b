package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/curriculum"
	"github.com/vrevia/vrevia-back/internal/models"
)

// CreateClassRequest inserts a request only while the student holds fewer
// than the per-level cap of non-cancelled requests. Check and insert are one
// statement, so two concurrent creations cannot both slip under the cap.
func CreateClassRequest(ctx context.Context, studentID uint, lessonNumber int, scheduledAt time.Time, note string) (*models.ClassRequest, error) {
	level := string(curriculum.LevelForLesson(lessonNumber))
	now := time.Now().UTC()

	res := DB.WithContext(ctx).Exec(`
		INSERT INTO class_requests
			(student_id, lesson_number, level, status, scheduled_at, note, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?
		WHERE (
			SELECT COUNT(*) FROM class_requests
			WHERE student_id = ? AND level = ? AND status <> ?
		) < ?`,
		studentID, lessonNumber, level, models.ClassRequestPending,
		scheduledAt.UTC(), note, now, now,
		studentID, level, models.ClassRequestCancelled,
		models.MaxClassRequestsPerLevel)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrQuotaExceeded
	}

	// Re-read by the inserted tuple, not "newest for student": a concurrent
	// creation for the same student must not be returned instead.
	var req models.ClassRequest
	err := DB.WithContext(ctx).
		Where("student_id = ? AND lesson_number = ? AND scheduled_at = ?",
			studentID, lessonNumber, scheduledAt.UTC()).
		Order("id desc").First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CancelClassRequest flips a request to cancelled. Completed and cancelled
// requests are final; requests starting in under 24 hours cannot be
// cancelled. Cancelled requests stop counting toward the quota.
func CancelClassRequest(ctx context.Context, studentID, requestID uint, now time.Time) (*models.ClassRequest, error) {
	var req models.ClassRequest
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND student_id = ?", requestID, studentID).
			First(&req).Error; err != nil {
			return err
		}
		if req.Status == models.ClassRequestCompleted || req.Status == models.ClassRequestCancelled {
			return ErrAlreadyFinal
		}
		if req.ScheduledAt.Sub(now) < models.ClassRequestCancelCutoff {
			return ErrCancelTooLate
		}
		req.Status = models.ClassRequestCancelled
		return tx.Model(&req).Update("status", req.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// SetClassRequestStatus is the admin transition (confirm, complete).
func SetClassRequestStatus(ctx context.Context, requestID uint, status string) (*models.ClassRequest, error) {
	var req models.ClassRequest
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			return err
		}
		if req.Status == models.ClassRequestCompleted || req.Status == models.ClassRequestCancelled {
			return ErrAlreadyFinal
		}
		req.Status = status
		return tx.Model(&req).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func ListClassRequests(ctx context.Context, studentID uint) ([]models.ClassRequest, error) {
	var reqs []models.ClassRequest
	tx := DB.WithContext(ctx).Order("scheduled_at")
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	if err := tx.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func GetClassRequest(ctx context.Context, id uint) (*models.ClassRequest, error) {
	var req models.ClassRequest
	if err := DB.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}
