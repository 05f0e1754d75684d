package application

import "time"

// Processing pipeline states for a university application.
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusAccepted   = "accepted"
	StatusRejected   = "rejected"
	StatusWithdrawn  = "withdrawn"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusSubmitted, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// A fresh application starts partway in, not at zero: the processing team
// only opens one after the student's file is assembled.
const initialProgress = 10

type Application struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID uint64 `gorm:"index;not null" json:"student_id"`

	UniversityName string `gorm:"type:varchar(255);not null" json:"university_name"`
	ProgramName    string `gorm:"type:varchar(255);not null" json:"program_name"`
	Intake         string `gorm:"type:varchar(100);not null" json:"intake"`

	Status   string `gorm:"type:varchar(50);index;not null;default:new" json:"status"`
	Progress int    `gorm:"not null;default:10" json:"progress"`

	ApplicationFee      *float64 `json:"application_fee,omitempty"`
	TuitionFee          *float64 `json:"tuition_fee,omitempty"`
	EstimatedLivingCost *float64 `json:"estimated_living_cost,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	// Staff member who opened the application.
	CreatedBy uint64 `gorm:"index" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

// HistoryEntry is an append-only audit line; one is written for every
// status or progress change so the student can follow the timeline.
type HistoryEntry struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID uint64    `gorm:"index;not null" json:"application_id"`
	Status        string    `gorm:"type:varchar(50);not null" json:"status"`
	Progress      int       `json:"progress"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy     uint64    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func (HistoryEntry) TableName() string { return "application_history" }
