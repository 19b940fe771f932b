package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/models"
)

func CreateLesson(ctx context.Context, l *models.Lesson) error {
	return DB.WithContext(ctx).Create(l).Error
}

func GetLessonByNumber(ctx context.Context, number int) (*models.Lesson, error) {
	var l models.Lesson
	err := DB.WithContext(ctx).
		Preload("Sections", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Exercises", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Where("number = ?", number).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func GetLessonByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var l models.Lesson
	if err := DB.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func ListLessons(ctx context.Context, publishedOnly bool) ([]models.Lesson, error) {
	var lessons []models.Lesson
	tx := DB.WithContext(ctx).Order("number")
	if publishedOnly {
		tx = tx.Where("published = ?", true)
	}
	if err := tx.Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func UpdateLesson(ctx context.Context, id uint, updates map[string]interface{}) error {
	return DB.WithContext(ctx).Model(&models.Lesson{}).Where("id = ?", id).Updates(updates).Error
}

func CreateLessonSection(ctx context.Context, s *models.LessonSection) error {
	return DB.WithContext(ctx).Create(s).Error
}

func GetLessonSection(ctx context.Context, lessonID uint, sectionID uint) (*models.LessonSection, error) {
	var s models.LessonSection
	err := DB.WithContext(ctx).
		Where("id = ? AND lesson_id = ?", sectionID, lessonID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SetSectionAudioPath caches the generated asset path on the section. Once
// set the section is never re-synthesized.
func SetSectionAudioPath(ctx context.Context, sectionID uint, path string) error {
	return DB.WithContext(ctx).Model(&models.LessonSection{}).Where("id = ?", sectionID).
		Update("audio_path", path).Error
}

func CreateExercise(ctx context.Context, e *models.Exercise) error {
	return DB.WithContext(ctx).Create(e).Error
}

func GetExercise(ctx context.Context, id uint) (*models.Exercise, error) {
	var e models.Exercise
	if err := DB.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func CreateExerciseAttempt(ctx context.Context, a *models.ExerciseAttempt) error {
	return DB.WithContext(ctx).Create(a).Error
}

func ListExerciseAttempts(ctx context.Context, studentID uint, exerciseID uint) ([]models.ExerciseAttempt, error) {
	var attempts []models.ExerciseAttempt
	tx := DB.WithContext(ctx).Where("student_id = ?", studentID)
	if exerciseID != 0 {
		tx = tx.Where("exercise_id = ?", exerciseID)
	}
	if err := tx.Order("created_at").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
