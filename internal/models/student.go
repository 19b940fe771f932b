package models

import (
	"strings"
	"time"
)

// Product modules a student may belong to. "school" is the tuition surface,
// "english" the paid e-learning surface. One student record serves both.
const (
	ModuleSchool  = "school"
	ModuleEnglish = "english"
)

type Student struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Phone     string `json:"phone"`
	Active    bool   `gorm:"default:true" json:"active"`

	// CurrentLesson drives all access decisions; CurrentLevel is kept in
	// step with it on every advance.
	CurrentLesson int    `gorm:"not null;default:1" json:"current_lesson"`
	CurrentLevel  string `gorm:"not null;default:a1" json:"current_level"`

	// Modules is the comma-joined module membership set, e.g. "school,english".
	Modules string `gorm:"not null;default:school" json:"modules"`

	GroupID *uint  `gorm:"index" json:"group_id,omitempty"`
	Group   *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasModule reports whether the student belongs to the named module.
func (s *Student) HasModule(module string) bool {
	for _, m := range strings.Split(s.Modules, ",") {
		if strings.TrimSpace(m) == module {
			return true
		}
	}
	return false
}

// LessonCompletion records one lesson a student has been advanced past.
type LessonCompletion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;uniqueIndex:idx_completion_student_lesson" json:"student_id"`
	LessonNumber int       `gorm:"not null;uniqueIndex:idx_completion_student_lesson" json:"lesson_number"`
	CreatedAt    time.Time `json:"created_at"`
}

type Group struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Teacher  string    `json:"teacher"`
	Schedule string    `json:"schedule"` // free-form, e.g. "Mon/Wed 18:00"
	Students []Student `gorm:"foreignKey:GroupID" json:"students,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
