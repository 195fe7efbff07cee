package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"biblios/internal/domain/errs"
	"biblios/internal/domain/loan"
	"biblios/internal/testutil/dbtest"
)

func TestLoan_CreateAndGetByID(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	lib := seedLibrary(t, db, "Central")
	b := seedBook(t, db, lib.ID, "Dune", 1)
	m := seedMember(t, db, lib.ID, "Ana")

	due := time.Now().UTC().Add(7 * 24 * time.Hour)
	l := seedLoan(t, db, b, m, loan.StatusActive, due)

	got, err := NewLoanRepository(db).GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.BookID != b.ID || got.MemberID != m.ID || got.Status != loan.StatusActive {
		t.Errorf("unexpected loan: %+v", got)
	}
	if !got.DueDate.Equal(due) {
		t.Errorf("due date round-trip: got %v want %v", got.DueDate, due)
	}
	if got.ReturnDate != nil {
		t.Errorf("fresh loan has return date %v", got.ReturnDate)
	}
}

func TestLoan_GetByID_NotFound(t *testing.T) {
	db := dbtest.Open(t)
	_, err := NewLoanRepository(db).GetByID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLoan_SaveUpdates(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	lib := seedLibrary(t, db, "Central")
	l := seedLoan(t, db, seedBook(t, db, lib.ID, "Dune", 1), seedMember(t, db, lib.ID, "Ana"), loan.StatusActive, time.Now().UTC().Add(time.Hour))

	if !l.Close(loan.StatusCompleted, time.Now()) {
		t.Fatal("Close refused")
	}
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByIDForUpdate(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	if got.Status != loan.StatusCompleted || got.ReturnDate == nil {
		t.Errorf("loan not updated: %+v", got)
	}
}

func TestLoan_MarkOverdue_Idempotent(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	lib := seedLibrary(t, db, "Central")
	b := seedBook(t, db, lib.ID, "Dune", 5)
	m := seedMember(t, db, lib.ID, "Ana")

	late := seedLoan(t, db, b, m, loan.StatusActive, now.Add(-24*time.Hour))
	fresh := seedLoan(t, db, b, m, loan.StatusActive, now.Add(24*time.Hour))
	done := seedLoan(t, db, b, m, loan.StatusCompleted, now.Add(-48*time.Hour))

	n, err := repo.MarkOverdue(ctx, now)
	if err != nil {
		t.Fatalf("MarkOverdue: %v", err)
	}
	if n != 1 {
		t.Fatalf("MarkOverdue changed %d rows, want 1", n)
	}
	n, err = repo.MarkOverdue(ctx, now)
	if err != nil || n != 0 {
		t.Fatalf("second MarkOverdue: n=%d err=%v", n, err)
	}

	want := map[string]loan.Status{late.ID: loan.StatusOverdue, fresh.ID: loan.StatusActive, done.ID: loan.StatusCompleted}
	for loanID, status := range want {
		got, err := repo.GetByID(ctx, loanID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != status {
			t.Errorf("loan %s: status %s, want %s", loanID, got.Status, status)
		}
	}
}

func TestLoan_CountsAndList(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	lib := seedLibrary(t, db, "Central")
	other := seedLibrary(t, db, "Branch")
	b := seedBook(t, db, lib.ID, "Dune", 5)
	m := seedMember(t, db, lib.ID, "Ana")
	m2 := seedMember(t, db, lib.ID, "Bruno")

	seedLoan(t, db, b, m, loan.StatusActive, now.Add(time.Hour))
	seedLoan(t, db, b, m, loan.StatusOverdue, now.Add(-time.Hour))
	seedLoan(t, db, b, m2, loan.StatusCompleted, now)
	seedLoan(t, db, seedBook(t, db, other.ID, "Emma", 1), seedMember(t, db, other.ID, "Zoe"), loan.StatusActive, now)

	if n, _ := repo.CountOpenByBook(ctx, b.ID); n != 2 {
		t.Errorf("CountOpenByBook = %d, want 2", n)
	}
	if n, _ := repo.CountOpenByMember(ctx, m2.ID); n != 0 {
		t.Errorf("CountOpenByMember = %d, want 0", n)
	}
	if n, _ := repo.CountByStatus(ctx, lib.ID, ""); n != 3 {
		t.Errorf("CountByStatus(all) = %d, want 3", n)
	}
	if n, _ := repo.CountByStatus(ctx, lib.ID, loan.StatusOverdue); n != 1 {
		t.Errorf("CountByStatus(overdue) = %d, want 1", n)
	}

	got, err := repo.List(ctx, loan.Query{LibraryID: lib.ID, MemberID: m.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d loans, want 2", len(got))
	}
	page, err := repo.List(ctx, loan.Query{LibraryID: lib.ID, Limit: 1, Offset: 1})
	if err != nil || len(page) != 1 {
		t.Fatalf("paged List: %d loans, err=%v", len(page), err)
	}
}

func TestLoan_DeleteScopes(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	lib := seedLibrary(t, db, "Central")
	b1 := seedBook(t, db, lib.ID, "Dune", 2)
	b2 := seedBook(t, db, lib.ID, "Emma", 2)
	m := seedMember(t, db, lib.ID, "Ana")
	seedLoan(t, db, b1, m, loan.StatusCompleted, now)
	keep := seedLoan(t, db, b2, m, loan.StatusCompleted, now)

	if err := repo.DeleteByBook(ctx, b1.ID); err != nil {
		t.Fatalf("DeleteByBook: %v", err)
	}
	if n, _ := repo.CountByStatus(ctx, lib.ID, ""); n != 1 {
		t.Fatalf("after DeleteByBook: %d loans left, want 1", n)
	}
	if _, err := repo.GetByID(ctx, keep.ID); err != nil {
		t.Fatalf("unrelated loan removed: %v", err)
	}
	if err := repo.DeleteByMember(ctx, m.ID); err != nil {
		t.Fatalf("DeleteByMember: %v", err)
	}
	if n, _ := repo.CountByStatus(ctx, lib.ID, ""); n != 0 {
		t.Fatalf("after DeleteByMember: %d loans left", n)
	}
}
