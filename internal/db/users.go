package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/models"
)

func CreateUser(ctx context.Context, u *models.User) error {
	return DB.WithContext(ctx).Create(u).Error
}

// CreateStudentWithUser provisions a student record and its login in one
// transaction; a taken email rolls back both rows.
func CreateStudentWithUser(ctx context.Context, s *models.Student, u *models.User) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createStudentTx(tx, s); err != nil {
			return err
		}
		u.StudentID = &s.ID
		return tx.Create(u).Error
	})
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Preload("Student").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Preload("Student").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
