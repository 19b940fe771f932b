package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/models"
)

func CreateSubscription(ctx context.Context, s *models.Subscription) error {
	return DB.WithContext(ctx).Create(s).Error
}

func ListSubscriptions(ctx context.Context, studentID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	tx := DB.WithContext(ctx).Order("end_date desc")
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	if err := tx.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func UpdateSubscriptionStatus(ctx context.Context, id uint, status string) error {
	return DB.WithContext(ctx).Model(&models.Subscription{}).Where("id = ?", id).
		Update("status", status).Error
}

// LatestSubscription returns the student's most recent subscription by end
// date, or nil when none exists.
func LatestSubscription(ctx context.Context, studentID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("end_date desc").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// HasActiveSubscription is the read-time paid-access predicate: a stored
// "active" status with a past end date evaluates false, the date wins.
func HasActiveSubscription(ctx context.Context, studentID uint, now time.Time) (bool, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&models.Subscription{}).
		Where("student_id = ? AND status = ? AND end_date > ?",
			studentID, models.SubscriptionActive, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
