package member

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// Table: members
type Member struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	LibraryID string    `gorm:"size:32;not null;index" json:"library_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Email     string    `gorm:"size:254;index" json:"email"`
	Phone     string    `gorm:"size:40" json:"phone"`
	Address   string    `gorm:"size:400" json:"address"`
	Status    Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

// CanBorrow: only active members take out loans.
func (m *Member) CanBorrow() bool { return m.Status == StatusActive }
