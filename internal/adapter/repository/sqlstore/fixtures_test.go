package sqlstore

import (
	"context"
	"testing"
	"time"

	"biblios/internal/domain/book"
	"biblios/internal/domain/library"
	"biblios/internal/domain/loan"
	"biblios/internal/domain/member"
	"biblios/pkg/id"

	"gorm.io/gorm"
)

func seedLibrary(t *testing.T, db *gorm.DB, name string) *library.Library {
	t.Helper()
	l := &library.Library{ID: id.NewID32(), Name: name}
	if err := NewLibraryRepository(db).Create(context.Background(), l); err != nil {
		t.Fatalf("seed library: %v", err)
	}
	return l
}

func seedBook(t *testing.T, db *gorm.DB, libraryID, title string, copies int) *book.Book {
	t.Helper()
	b := &book.Book{
		ID:              id.NewID32(),
		LibraryID:       libraryID,
		Title:           title,
		Author:          "Author " + title,
		TotalCopies:     copies,
		AvailableCopies: copies,
		Status:          book.StatusAvailable,
	}
	if err := NewBookRepository(db).Create(context.Background(), b); err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return b
}

func seedMember(t *testing.T, db *gorm.DB, libraryID, name string) *member.Member {
	t.Helper()
	m := &member.Member{ID: id.NewID32(), LibraryID: libraryID, Name: name, Status: member.StatusActive}
	if err := NewMemberRepository(db).Create(context.Background(), m); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}

func seedLoan(t *testing.T, db *gorm.DB, b *book.Book, m *member.Member, status loan.Status, due time.Time) *loan.Loan {
	t.Helper()
	l := &loan.Loan{
		ID:        id.NewID32(),
		BookID:    b.ID,
		MemberID:  m.ID,
		LibraryID: b.LibraryID,
		LoanDate:  due.Add(-7 * 24 * time.Hour),
		DueDate:   due,
		Status:    status,
	}
	if err := NewLoanRepository(db).Create(context.Background(), l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}
