package db

import (
	"context"

	"github.com/vrevia/vrevia-back/internal/models"
)

func CreatePayment(ctx context.Context, p *models.Payment) error {
	return DB.WithContext(ctx).Create(p).Error
}

func GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func ListPayments(ctx context.Context, studentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	tx := DB.WithContext(ctx).Order("period desc, id desc")
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	if err := tx.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func UpdatePayment(ctx context.Context, id uint, updates map[string]interface{}) error {
	return DB.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Updates(updates).Error
}
