package document

import "time"

// Review states for an uploaded document.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document kinds the portal tracks for a student file.
const (
	TypeAcademic  = "academic"
	TypeFinancial = "financial"
	TypeVisa      = "visa"
	TypeCustom    = "custom"
)

func ValidType(t string) bool {
	switch t {
	case TypeAcademic, TypeFinancial, TypeVisa, TypeCustom:
		return true
	}
	return false
}

type Document struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"user_id"`

	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Type string `gorm:"type:varchar(20);not null" json:"type"`

	// Where the file itself lives; uploads go to object storage and only
	// the URL is recorded here.
	FileURL string `gorm:"type:varchar(1024);not null" json:"file_url"`

	// Display name for TypeCustom documents.
	CustomName string `gorm:"type:varchar(255)" json:"custom_name,omitempty"`

	Status   string `gorm:"type:varchar(20);index;not null;default:pending" json:"status"`
	Feedback string `gorm:"type:text" json:"feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
