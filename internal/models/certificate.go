package models

import "time"

// Certificate asserts a student completed a level. At most one per
// (student, level); the serial number is globally unique.
type Certificate struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"not null;uniqueIndex:idx_cert_student_level" json:"student_id"`
	Level     string `gorm:"not null;uniqueIndex:idx_cert_student_level" json:"level"`
	Number    string `gorm:"uniqueIndex;not null" json:"number"` // VREVIA-<year>-<6 base36>
	IssuedBy  string `json:"issued_by"`

	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	CreatedAt time.Time `json:"created_at"`
}
