package loan

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusOverdue   Status = "overdue"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOverdue, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Open statuses still hold a copy of the book.
func (s Status) Open() bool { return s == StatusActive || s == StatusOverdue }

// CanTransition encodes the loan state machine:
// active -> overdue | completed | cancelled, overdue -> completed | cancelled.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusActive:
		return to == StatusOverdue || to == StatusCompleted || to == StatusCancelled
	case StatusOverdue:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// Table: loans
type Loan struct {
	ID         string     `gorm:"primaryKey;size:32" json:"id"`
	BookID     string     `gorm:"size:32;not null;index" json:"book_id"`
	MemberID   string     `gorm:"size:32;not null;index" json:"member_id"`
	LibraryID  string     `gorm:"size:32;not null;index" json:"library_id"`
	LoanDate   time.Time  `gorm:"not null" json:"loan_date"`
	DueDate    time.Time  `gorm:"not null;index" json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     Status     `gorm:"size:16;not null;index" json:"status"`
	Notes      string     `gorm:"size:500" json:"notes"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// OverdueAt reports whether the loan is still out past its due date.
func (l *Loan) OverdueAt(now time.Time) bool {
	return l.Status == StatusActive && l.DueDate.Before(now)
}

// Close moves an open loan to completed or cancelled. Only completed loans
// carry a return date.
func (l *Loan) Close(to Status, now time.Time) bool {
	if to != StatusCompleted && to != StatusCancelled {
		return false
	}
	if !CanTransition(l.Status, to) {
		return false
	}
	l.Status = to
	if to == StatusCompleted {
		t := now.UTC()
		l.ReturnDate = &t
	}
	return true
}
