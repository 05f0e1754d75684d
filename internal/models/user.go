package models

import "time"

// Portal roles. Each role maps to its own token on the client side.
const (
	RoleStudent    = "student"
	RoleAdmin      = "admin"
	RoleProcessing = "processing"
	RoleB2B        = "b2b"
)

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleAdmin, RoleProcessing, RoleB2B:
		return true
	}
	return false
}

type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string `gorm:"type:varchar(255)" json:"name"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	Role         string `gorm:"type:varchar(16);index;not null;default:student" json:"role"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Student profile fields, editable via the portal.
	Address        string `gorm:"type:varchar(255)" json:"address,omitempty"`
	DateOfBirth    string `gorm:"type:varchar(20)" json:"dob,omitempty"`
	Bio            string `gorm:"type:text" json:"bio,omitempty"`
	ProfilePicture string `gorm:"type:varchar(512)" json:"profile_picture,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
