package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/models"
)

// CreateAttendance inserts a keyed attendance fact. A duplicate
// (student, lesson, kind) is rejected and the existing record untouched.
func CreateAttendance(ctx context.Context, a *models.Attendance) error {
	err := DB.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateRecord
	}
	return err
}

func ListAttendance(ctx context.Context, studentID uint) ([]models.Attendance, error) {
	var records []models.Attendance
	tx := DB.WithContext(ctx).Order("lesson_number")
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func CreateGrade(ctx context.Context, g *models.Grade) error {
	err := DB.WithContext(ctx).Create(g).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateRecord
	}
	return err
}

func ListGrades(ctx context.Context, studentID uint) ([]models.Grade, error) {
	var grades []models.Grade
	tx := DB.WithContext(ctx).Order("lesson_number")
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	if err := tx.Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

// OverrideGrade applies an extraordinary grade: the prior score is appended
// to the revision history before the grade itself is rewritten.
func OverrideGrade(ctx context.Context, gradeID uint, newScore int, reason, changedBy string) (*models.Grade, error) {
	var grade models.Grade
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&grade, gradeID).Error; err != nil {
			return err
		}
		rev := models.GradeRevision{
			GradeID:   grade.ID,
			OldScore:  grade.Score,
			NewScore:  newScore,
			Reason:    reason,
			ChangedBy: changedBy,
		}
		if err := tx.Create(&rev).Error; err != nil {
			return err
		}
		grade.Score = newScore
		grade.Extraordinary = true
		return tx.Model(&grade).Updates(map[string]interface{}{
			"score":         newScore,
			"extraordinary": true,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func ListGradeRevisions(ctx context.Context, gradeID uint) ([]models.GradeRevision, error) {
	var revs []models.GradeRevision
	err := DB.WithContext(ctx).Where("grade_id = ?", gradeID).
		Order("created_at").Find(&revs).Error
	if err != nil {
		return nil, err
	}
	return revs, nil
}
