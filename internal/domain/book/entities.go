package book

import "time"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusLoaned      Status = "loaned"
	StatusMaintenance Status = "maintenance"
	StatusLost        Status = "lost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusLoaned, StatusMaintenance, StatusLost:
		return true
	}
	return false
}

// Forced reports a manually set status that overrides the derived one.
func (s Status) Forced() bool { return s == StatusMaintenance || s == StatusLost }

// Table: books
type Book struct {
	ID              string    `gorm:"primaryKey;size:32" json:"id"`
	LibraryID       string    `gorm:"size:32;not null;index;uniqueIndex:ux_books_library_isbn" json:"library_id"`
	Title           string    `gorm:"size:300;not null" json:"title"`
	Author          string    `gorm:"size:200;not null" json:"author"`
	ISBN            *string   `gorm:"column:isbn;size:13;uniqueIndex:ux_books_library_isbn" json:"isbn,omitempty"`
	Category        string    `gorm:"size:100;index" json:"category"`
	Publisher       string    `gorm:"size:200" json:"publisher"`
	Year            int       `json:"year"`
	TotalCopies     int       `gorm:"not null" json:"total_copies"`
	AvailableCopies int       `gorm:"not null" json:"available_copies"`
	Location        string    `gorm:"size:100" json:"location"`
	Status          Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string { return "books" }

// DeriveStatus is the status implied by the copy counters alone.
func DeriveStatus(available, total int) Status {
	if available == 0 && total > 0 {
		return StatusLoaned
	}
	return StatusAvailable
}

// Refresh recomputes Status from the counters unless a manual status is set.
func (b *Book) Refresh() {
	if b.Status.Forced() {
		return
	}
	b.Status = DeriveStatus(b.AvailableCopies, b.TotalCopies)
}

// Lendable reports whether a copy can be handed out right now.
func (b *Book) Lendable() bool {
	return !b.Status.Forced() && b.AvailableCopies > 0
}

// CheckOut takes one copy. It reports false when none is free.
func (b *Book) CheckOut() bool {
	if !b.Lendable() {
		return false
	}
	b.AvailableCopies--
	b.Refresh()
	return true
}

// CheckIn puts one copy back, never exceeding TotalCopies.
func (b *Book) CheckIn() {
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
	b.Refresh()
}

func (b *Book) ISBNValue() string {
	if b.ISBN == nil {
		return ""
	}
	return *b.ISBN
}
