package models

import "time"

// Roles accepted by the API.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:student" json:"role"`

	// StudentID links a portal account to its student record. Admin
	// accounts have no student.
	StudentID *uint    `gorm:"index" json:"student_id,omitempty"`
	Student   *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
