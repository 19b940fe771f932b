package models

import "time"

type Lesson struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Number    int    `gorm:"uniqueIndex;not null" json:"number"` // 1..150
	Title     string `gorm:"not null" json:"title"`
	Published bool   `gorm:"default:false" json:"published"`

	Sections  []LessonSection `gorm:"foreignKey:LessonID" json:"sections,omitempty"`
	Exercises []Exercise      `gorm:"foreignKey:LessonID" json:"exercises,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LessonSection is one ordered content block of a lesson. AudioPath is set
// once the section has been synthesized and never regenerated after that.
type LessonSection struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LessonID  uint   `gorm:"not null;uniqueIndex:idx_section_lesson_pos" json:"lesson_id"`
	Position  int    `gorm:"not null;uniqueIndex:idx_section_lesson_pos" json:"position"`
	Title     string `json:"title"`
	Body      string `gorm:"type:text" json:"body"`
	AudioPath string `json:"audio_path,omitempty"`
}

// Exercise kinds.
const (
	ExerciseTranslate = "translate"
	ExerciseFillGap   = "fill_gap"
	ExerciseListening = "listening"
)

type Exercise struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	LessonID uint   `gorm:"not null;uniqueIndex:idx_exercise_lesson_pos" json:"lesson_id"`
	Position int    `gorm:"not null;uniqueIndex:idx_exercise_lesson_pos" json:"position"`
	Kind     string `gorm:"not null;default:translate" json:"kind"`
	Prompt   string `gorm:"type:text;not null" json:"prompt"`
	Answer   string `gorm:"not null" json:"-"`
}

type ExerciseAttempt struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;index" json:"student_id"`
	ExerciseID uint      `gorm:"not null;index" json:"exercise_id"`
	Answer     string    `gorm:"not null" json:"answer"`
	Correct    bool      `json:"correct"`
	CreatedAt  time.Time `json:"created_at"`
}
