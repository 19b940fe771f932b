package models

import "time"

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Attendance is a keyed fact: one record per (student, lesson, kind).
type Attendance struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;uniqueIndex:idx_attendance_key" json:"student_id"`
	LessonNumber int       `gorm:"not null;uniqueIndex:idx_attendance_key" json:"lesson_number"`
	Kind         string    `gorm:"not null;default:class;uniqueIndex:idx_attendance_key" json:"kind"`
	Status       string    `gorm:"not null" json:"status"`
	Date         time.Time `gorm:"not null" json:"date"`
	MarkedBy     string    `json:"marked_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// Grade kinds.
const (
	GradeHomework = "homework"
	GradeTest     = "test"
	GradeSpeaking = "speaking"
)

type Grade struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	StudentID    uint   `gorm:"not null;uniqueIndex:idx_grade_key" json:"student_id"`
	LessonNumber int    `gorm:"not null;uniqueIndex:idx_grade_key" json:"lesson_number"`
	Kind         string `gorm:"not null;uniqueIndex:idx_grade_key" json:"kind"`
	Score        int    `gorm:"not null" json:"score"`
	Comment      string `json:"comment"`

	// Extraordinary marks a grade that has been overridden at least once.
	// The override history lives in GradeRevision rows.
	Extraordinary bool `gorm:"default:false" json:"extraordinary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GradeRevision is one entry of the append-only override history.
type GradeRevision struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GradeID   uint      `gorm:"not null;index" json:"grade_id"`
	OldScore  int       `json:"old_score"`
	NewScore  int       `json:"new_score"`
	Reason    string    `gorm:"not null" json:"reason"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}
