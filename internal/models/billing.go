package models

import "time"

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type Payment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"not null;index" json:"student_id"`
	Amount    int64  `gorm:"not null" json:"amount"` // KZT, whole units
	Period    string `gorm:"not null" json:"period"` // e.g. "2026-08"
	Method    string `json:"method"`                 // cash, card, transfer
	Status    string `gorm:"not null;default:pending" json:"status"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Subscription statuses. The stored status is advisory: access is always
// re-derived from EndDate at check time and the date wins over a stale field.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Subscription types.
const (
	SubscriptionMonthly   = "monthly"
	SubscriptionQuarterly = "quarterly"
	SubscriptionYearly    = "yearly"
)

type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	Type      string    `gorm:"not null" json:"type"`
	Status    string    `gorm:"not null;default:active" json:"status"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive is the paid-access predicate. No background job relabels expired
// subscriptions, so the end date must be checked every time.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionActive && s.EndDate.After(now)
}
