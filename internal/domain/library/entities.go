package library

import "time"

// Table: libraries
type Library struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Name      string    `gorm:"size:200;not null;uniqueIndex:ux_libraries_name" json:"name"`
	Email     string    `gorm:"size:254" json:"email"`
	Phone     string    `gorm:"size:40" json:"phone"`
	Address   string    `gorm:"size:400" json:"address"`
	Active    bool      `gorm:"not null;default:false" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Library) TableName() string { return "libraries" }

// SelectionRowID is the only row ever present in library_selection.
const SelectionRowID uint = 1

// Selection records the single active library. Activation rewrites this row
// and the libraries.active flags in one transaction.
type Selection struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false"`
	LibraryID string    `gorm:"size:32;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Selection) TableName() string { return "library_selection" }
