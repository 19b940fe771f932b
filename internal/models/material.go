package models

import "time"

// Material is an uploaded study file. Only PDFs up to the configured size
// limit are accepted; the stored name is a uuid, the original name is kept
// for display.
type Material struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	FileName    string    `gorm:"not null" json:"file_name"`
	StoredPath  string    `gorm:"not null" json:"stored_path"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Assignment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GroupID      uint      `gorm:"not null;index" json:"group_id"`
	LessonNumber int       `gorm:"not null" json:"lesson_number"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	DueAt        time.Time `gorm:"not null" json:"due_at"`

	Submissions []Submission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Submission struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AssignmentID uint   `gorm:"not null;uniqueIndex:idx_submission_key" json:"assignment_id"`
	StudentID    uint   `gorm:"not null;uniqueIndex:idx_submission_key" json:"student_id"`
	Body         string `gorm:"type:text" json:"body"`

	// MaterialID points at an uploaded file handed in with the submission.
	MaterialID *uint `gorm:"index" json:"material_id,omitempty"`

	Score     *int      `json:"score,omitempty"`
	GradedBy  string    `json:"graded_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
