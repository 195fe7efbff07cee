package ledger

import (
	"time"

	"biblios/internal/domain/book"
	"biblios/internal/domain/loan"
	"biblios/internal/domain/member"
)

type CreateBookInput struct {
	// Empty means the active library.
	LibraryID   string `json:"library_id" validate:"omitempty,hex32"`
	Title       string `json:"title" validate:"notblank,max=300"`
	Author      string `json:"author" validate:"notblank,max=200"`
	ISBN        string `json:"isbn" validate:"omitempty,isbn"`
	Category    string `json:"category" validate:"max=100"`
	Publisher   string `json:"publisher" validate:"max=200"`
	Year        int    `json:"year" validate:"gte=0"`
	TotalCopies int    `json:"total_copies" validate:"gte=0"` // 0 = default of one copy
	Location    string `json:"location" validate:"max=100"`
}

// UpdateBookInput patches a book; nil fields are left alone. An empty ISBN
// clears it.
type UpdateBookInput struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=300"`
	Author      *string `json:"author" validate:"omitempty,notblank,max=200"`
	ISBN        *string `json:"isbn"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Publisher   *string `json:"publisher" validate:"omitempty,max=200"`
	Year        *int    `json:"year" validate:"omitempty,gte=0"`
	TotalCopies *int    `json:"total_copies" validate:"omitempty,gte=1"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
}

type BookQuery struct {
	LibraryID string
	Search    string
	Category  string
	Status    book.Status
	Limit     int
	Offset    int
}

type BookDTO struct {
	ID              string    `json:"id"`
	LibraryID       string    `json:"library_id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn,omitempty"`
	Category        string    `json:"category"`
	Publisher       string    `json:"publisher"`
	Year            int       `json:"year,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toBookDTO(b *book.Book) *BookDTO {
	return &BookDTO{
		ID:              b.ID,
		LibraryID:       b.LibraryID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBNValue(),
		Category:        b.Category,
		Publisher:       b.Publisher,
		Year:            b.Year,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Location:        b.Location,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

type CreateMemberInput struct {
	LibraryID string `json:"library_id" validate:"omitempty,hex32"`
	Name      string `json:"name" validate:"notblank,max=200"`
	Email     string `json:"email" validate:"omitempty,email,max=200"`
	Phone     string `json:"phone" validate:"max=50"`
	Address   string `json:"address" validate:"max=300"`
	// Empty means active.
	Status string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

type UpdateMemberInput struct {
	Name    *string `json:"name" validate:"omitempty,notblank,max=200"`
	Email   *string `json:"email" validate:"omitempty,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

type MemberQuery struct {
	LibraryID string
	Search    string
	Status    member.Status
	Limit     int
	Offset    int
}

type MemberDTO struct {
	ID        string    `json:"id"`
	LibraryID string    `json:"library_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toMemberDTO(m *member.Member) *MemberDTO {
	return &MemberDTO{
		ID:        m.ID,
		LibraryID: m.LibraryID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type CreateLoanInput struct {
	BookID   string    `json:"book_id" validate:"required,hex32"`
	MemberID string    `json:"member_id" validate:"required,hex32"`
	DueDate  time.Time `json:"due_date" validate:"required"`
	Notes    string    `json:"notes" validate:"max=500"`
}

type LoanQuery struct {
	LibraryID string
	BookID    string
	MemberID  string
	Status    loan.Status
	Limit     int
	Offset    int
}

type LoanDTO struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	MemberID   string     `json:"member_id"`
	LibraryID  string     `json:"library_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
}

func toLoanDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		ID:         l.ID,
		BookID:     l.BookID,
		MemberID:   l.MemberID,
		LibraryID:  l.LibraryID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     string(l.Status),
		Notes:      l.Notes,
	}
}

type StatsDTO struct {
	LibraryID       string `json:"library_id"`
	TotalBooks      int64  `json:"total_books"`
	TotalMembers    int64  `json:"total_members"`
	ActiveMembers   int64  `json:"active_members"`
	ActiveLoans     int64  `json:"active_loans"`
	OverdueLoans    int64  `json:"overdue_loans"`
	CompletedLoans  int64  `json:"completed_loans"`
	CancelledLoans  int64  `json:"cancelled_loans"`
	TotalCopies     int64  `json:"total_copies"`
	AvailableCopies int64  `json:"available_copies"`
}
