package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/models"
)

func CreateMaterial(ctx context.Context, m *models.Material) error {
	return DB.WithContext(ctx).Create(m).Error
}

func GetMaterial(ctx context.Context, id uint) (*models.Material, error) {
	var m models.Material
	if err := DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func ListMaterials(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	if err := DB.WithContext(ctx).Order("created_at desc").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func CreateAssignment(ctx context.Context, a *models.Assignment) error {
	return DB.WithContext(ctx).Create(a).Error
}

func GetAssignment(ctx context.Context, id uint) (*models.Assignment, error) {
	var a models.Assignment
	if err := DB.WithContext(ctx).Preload("Submissions").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func ListAssignments(ctx context.Context, groupID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	tx := DB.WithContext(ctx).Order("due_at")
	if groupID != 0 {
		tx = tx.Where("group_id = ?", groupID)
	}
	if err := tx.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreateSubmission rejects a second hand-in for the same assignment.
func CreateSubmission(ctx context.Context, s *models.Submission) error {
	err := DB.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateRecord
	}
	return err
}

func GradeSubmission(ctx context.Context, id uint, score int, gradedBy string) error {
	return DB.WithContext(ctx).Model(&models.Submission{}).Where("id = ?", id).
		Updates(map[string]interface{}{"score": score, "graded_by": gradedBy}).Error
}

func ListSubmissions(ctx context.Context, assignmentID uint, studentID uint) ([]models.Submission, error) {
	var subs []models.Submission
	tx := DB.WithContext(ctx).Order("created_at")
	if assignmentID != 0 {
		tx = tx.Where("assignment_id = ?", assignmentID)
	}
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	if err := tx.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
