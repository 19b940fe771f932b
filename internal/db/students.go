package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vrevia/vrevia-back/internal/curriculum"
	"github.com/vrevia/vrevia-back/internal/models"
)

// createStudentTx normalizes and inserts a student inside tx. A zero lesson
// defaults to the first; anything else outside 1..150 is rejected.
func createStudentTx(tx *gorm.DB, s *models.Student) error {
	if s.CurrentLesson == 0 {
		s.CurrentLesson = curriculum.FirstLesson
	}
	if !curriculum.ValidLesson(s.CurrentLesson) {
		return ErrLessonOutOfRange
	}
	s.CurrentLevel = string(curriculum.LevelForLesson(s.CurrentLesson))
	return tx.Create(s).Error
}

func CreateStudent(ctx context.Context, s *models.Student) error {
	return createStudentTx(DB.WithContext(ctx), s)
}

func GetStudent(ctx context.Context, id uint) (*models.Student, error) {
	var s models.Student
	if err := DB.WithContext(ctx).Preload("Group").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := DB.WithContext(ctx).Order("last_name, first_name").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func UpdateStudent(ctx context.Context, id uint, updates map[string]interface{}) error {
	return DB.WithContext(ctx).Model(&models.Student{}).Where("id = ?", id).Updates(updates).Error
}

func SetStudentActive(ctx context.Context, id uint, active bool) error {
	return DB.WithContext(ctx).Model(&models.Student{}).Where("id = ?", id).
		Update("active", active).Error
}

// advanceStudentTx applies one increment inside tx. A student already at the
// last lesson is left untouched.
func advanceStudentTx(tx *gorm.DB, s *models.Student) error {
	if s.CurrentLesson >= curriculum.LastLesson {
		return nil
	}
	completed := s.CurrentLesson
	s.CurrentLesson = curriculum.Advance(s.CurrentLesson)
	s.CurrentLevel = string(curriculum.LevelForLesson(s.CurrentLesson))
	if err := tx.Model(s).Updates(map[string]interface{}{
		"current_lesson": s.CurrentLesson,
		"current_level":  s.CurrentLevel,
	}).Error; err != nil {
		return err
	}
	comp := models.LessonCompletion{StudentID: s.ID, LessonNumber: completed}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&comp).Error
}

// AdvanceStudent moves a student one lesson forward, keeping the level in step
// and recording the completed lesson. No-op at lesson 150.
func AdvanceStudent(ctx context.Context, id uint) (*models.Student, error) {
	var s models.Student
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		return advanceStudentTx(tx, &s)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AdvanceGroup advances every active student of a group by one lesson and
// returns how many students moved.
func AdvanceGroup(ctx context.Context, groupID uint) (int, error) {
	advanced := 0
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var students []models.Student
		if err := tx.Where("group_id = ? AND active = ?", groupID, true).Find(&students).Error; err != nil {
			return err
		}
		for i := range students {
			if students[i].CurrentLesson >= curriculum.LastLesson {
				continue
			}
			if err := advanceStudentTx(tx, &students[i]); err != nil {
				return err
			}
			advanced++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return advanced, nil
}

func GetCompletedLessons(ctx context.Context, studentID uint) ([]int, error) {
	var numbers []int
	err := DB.WithContext(ctx).Model(&models.LessonCompletion{}).
		Where("student_id = ?", studentID).
		Order("lesson_number").
		Pluck("lesson_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
