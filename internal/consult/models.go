package consult

import "time"

// Booking lifecycle states.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Consultation struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone string `gorm:"type:varchar(50);not null" json:"phone"`

	// Requested slot, kept as the caller submitted it.
	Date string `gorm:"type:varchar(50);not null" json:"date"`
	Time string `gorm:"type:varchar(50);not null" json:"time"`

	Service string `gorm:"type:varchar(100)" json:"service,omitempty"`
	Message string `gorm:"type:text" json:"message,omitempty"`
	Notes   string `gorm:"type:text" json:"notes,omitempty"`

	Status           string `gorm:"type:varchar(50);index;not null;default:pending" json:"status"`
	PaymentStatus    string `gorm:"type:varchar(50);not null;default:pending" json:"payment_status"`
	PaymentReference string `gorm:"type:varchar(255)" json:"payment_reference,omitempty"`

	// Chat session the booking originated from, when it came via the widget.
	SessionID string `gorm:"type:varchar(36);index" json:"session_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Consultation) TableName() string { return "consultations" }
