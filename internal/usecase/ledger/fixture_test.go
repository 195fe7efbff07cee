package ledger

import (
	"context"
	"testing"
	"time"

	"biblios/internal/adapter/repository/sqlstore"
	"biblios/internal/domain/book"
	"biblios/internal/domain/library"
	"biblios/internal/domain/member"
	"biblios/internal/testutil/dbtest"
	"biblios/pkg/id"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t         *testing.T
	db        *gorm.DB
	uc        *Usecase
	libraryID string
}

// newFixture opens an empty store with one active library.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	repos := sqlstore.Repositories(db)

	lib := &library.Library{ID: id.NewID32(), Name: "Central"}
	require.NoError(t, repos.Libraries.Create(context.Background(), lib))
	require.NoError(t, repos.Libraries.Activate(context.Background(), lib.ID))

	return &fixture{
		t:         t,
		db:        db,
		uc:        NewUsecase(repos, sqlstore.NewGormUoW(db), opts...),
		libraryID: lib.ID,
	}
}

func (f *fixture) otherLibrary(name string) string {
	f.t.Helper()
	lib := &library.Library{ID: id.NewID32(), Name: name}
	require.NoError(f.t, sqlstore.NewLibraryRepository(f.db).Create(context.Background(), lib))
	return lib.ID
}

func (f *fixture) book(copies int) *BookDTO {
	f.t.Helper()
	b, err := f.uc.CreateBook(context.Background(), CreateBookInput{Title: "Dune", Author: "Frank Herbert", TotalCopies: copies})
	require.NoError(f.t, err)
	return b
}

func (f *fixture) member() *MemberDTO {
	f.t.Helper()
	m, err := f.uc.CreateMember(context.Background(), CreateMemberInput{Name: "Ana Torres", Email: "ana@example.com"})
	require.NoError(f.t, err)
	return m
}

func (f *fixture) loan(bookID, memberID string) *LoanDTO {
	f.t.Helper()
	l, err := f.uc.CreateLoan(context.Background(), CreateLoanInput{
		BookID:   bookID,
		MemberID: memberID,
		DueDate:  time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(f.t, err)
	return l
}

func (f *fixture) getBook(bookID string) *BookDTO {
	f.t.Helper()
	b, err := f.uc.GetBook(context.Background(), bookID)
	require.NoError(f.t, err)
	return b
}

func (f *fixture) getMember(memberID string) *member.Member {
	f.t.Helper()
	m, err := sqlstore.NewMemberRepository(f.db).GetByID(context.Background(), memberID)
	require.NoError(f.t, err)
	return m
}

// assertBookInvariants checks every stored book: counters in range and the
// loaned status matching the counters unless a manual status is set.
func (f *fixture) assertBookInvariants() {
	f.t.Helper()
	books, err := sqlstore.NewBookRepository(f.db).List(context.Background(), book.Query{})
	require.NoError(f.t, err)
	for _, b := range books {
		if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
			f.t.Errorf("book %s: available %d outside [0,%d]", b.ID, b.AvailableCopies, b.TotalCopies)
		}
		if b.Status.Forced() {
			continue
		}
		loaned := b.AvailableCopies == 0 && b.TotalCopies > 0
		if (b.Status == book.StatusLoaned) != loaned {
			f.t.Errorf("book %s: status %s with %d/%d available", b.ID, b.Status, b.AvailableCopies, b.TotalCopies)
		}
	}
}
