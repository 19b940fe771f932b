package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/models"
)

func CreateGroup(ctx context.Context, g *models.Group) error {
	return DB.WithContext(ctx).Create(g).Error
}

func GetGroup(ctx context.Context, id uint) (*models.Group, error) {
	var g models.Group
	if err := DB.WithContext(ctx).Preload("Students").First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := DB.WithContext(ctx).Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func UpdateGroup(ctx context.Context, id uint, updates map[string]interface{}) error {
	return DB.WithContext(ctx).Model(&models.Group{}).Where("id = ?", id).Updates(updates).Error
}

func DeleteGroup(ctx context.Context, id uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Student{}).Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
}

// AssignStudentToGroup moves a student into a group; a nil groupID removes
// the membership.
func AssignStudentToGroup(ctx context.Context, studentID uint, groupID *uint) error {
	return DB.WithContext(ctx).Model(&models.Student{}).Where("id = ?", studentID).
		Update("group_id", groupID).Error
}
