package models

import "time"

// Class request statuses.
const (
	ClassRequestPending   = "pending"
	ClassRequestConfirmed = "confirmed"
	ClassRequestCompleted = "completed"
	ClassRequestCancelled = "cancelled"
)

const (
	// MaxClassRequestsPerLevel caps non-cancelled requests per (student, level).
	MaxClassRequestsPerLevel = 3
	// ClassRequestCancelCutoff is the minimum notice for a cancellation.
	ClassRequestCancelCutoff = 24 * time.Hour
)

// ClassRequest is a student-initiated request for a supplemental paid class.
// Level is derived from LessonNumber at creation and never changes.
type ClassRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;index:idx_request_student_level" json:"student_id"`
	LessonNumber int       `gorm:"not null" json:"lesson_number"`
	Level        string    `gorm:"not null;index:idx_request_student_level" json:"level"`
	Status       string    `gorm:"not null;default:pending" json:"status"`
	ScheduledAt  time.Time `gorm:"not null" json:"scheduled_at"`
	Note         string    `json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
