package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"biblios/internal/adapter/repository/sqlstore"
	"biblios/internal/domain/book"
	"biblios/internal/domain/errs"
	"biblios/internal/domain/loan"
	"biblios/internal/domain/member"
	"biblios/internal/testutil/dbtest"
	"biblios/pkg/id"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUsecase(t *testing.T) (*Usecase, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return NewUsecase(sqlstore.NewLibraryRepository(db), sqlstore.NewGormUoW(db), nil, 0), db
}

func countActive(t *testing.T, uc *Usecase) int {
	t.Helper()
	libs, err := uc.List(context.Background())
	require.NoError(t, err)
	n := 0
	for _, l := range libs {
		if l.Active {
			n++
		}
	}
	return n
}

func TestCreate_FirstLibraryBecomesActive(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, CreateInput{Name: "Central", Email: "central@example.com"})
	require.NoError(t, err)
	assert.True(t, first.Active)
	assert.Len(t, first.ID, 32)

	second, err := uc.Create(ctx, CreateInput{Name: "Branch"})
	require.NoError(t, err)
	assert.False(t, second.Active)

	cur, err := uc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, cur.ID)
}

func TestCreate_Validation(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, CreateInput{Name: "  "})
	assert.True(t, errors.Is(err, errs.ErrValidation), "blank name: %v", err)

	_, err = uc.Create(ctx, CreateInput{Name: "Central", Email: "not-an-email"})
	assert.True(t, errors.Is(err, errs.ErrValidation), "bad email: %v", err)
}

func TestCreate_DuplicateName(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, CreateInput{Name: "Central"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, CreateInput{Name: " Central "})
	assert.True(t, errors.Is(err, errs.ErrConflict), "got %v", err)
}

func TestActivate_ExactlyOneActive(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		l, err := uc.Create(ctx, CreateInput{Name: fmt.Sprintf("Library %d", i)})
		require.NoError(t, err)
		ids = append(ids, l.ID)
		assert.Equal(t, 1, countActive(t, uc))
	}
	for _, libID := range []string{ids[2], ids[0], ids[3], ids[3]} {
		got, err := uc.Activate(ctx, libID)
		require.NoError(t, err)
		assert.True(t, got.Active)
		assert.Equal(t, 1, countActive(t, uc))

		cur, err := uc.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, libID, cur.ID)
	}
}

func TestActivate_Concurrent(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		l, err := uc.Create(ctx, CreateInput{Name: fmt.Sprintf("Library %d", i)})
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(libID string) {
			defer wg.Done()
			_, err := uc.Activate(ctx, libID)
			assert.NoError(t, err)
		}(ids[i%len(ids)])
	}
	wg.Wait()
	assert.Equal(t, 1, countActive(t, uc))
}

func TestActivate_UnknownLibrary(t *testing.T) {
	uc, _ := newUsecase(t)
	_, err := uc.Activate(context.Background(), id.NewID32())
	assert.True(t, errors.Is(err, errs.ErrNotFound), "got %v", err)
}

func TestCurrent_NoLibraries(t *testing.T) {
	uc, _ := newUsecase(t)
	_, err := uc.Current(context.Background())
	assert.True(t, errors.Is(err, errs.ErrNotFound), "got %v", err)
}

func TestUpdate_KeepsActiveFlag(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, CreateInput{Name: "A"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, CreateInput{Name: "B"})
	require.NoError(t, err)

	name := "A renamed"
	phone := " 555-0100 "
	got, err := uc.Update(ctx, a.ID, UpdateInput{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "A renamed", got.Name)
	assert.Equal(t, "555-0100", got.Phone)
	assert.True(t, got.Active)
	assert.Equal(t, 1, countActive(t, uc))

	taken := "B"
	_, err = uc.Update(ctx, a.ID, UpdateInput{Name: &taken})
	assert.True(t, errors.Is(err, errs.ErrConflict), "got %v", err)
}

func TestDelete_ActiveHandsOverToOldest(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, CreateInput{Name: "A"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	b, err := uc.Create(ctx, CreateInput{Name: "B"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	c, err := uc.Create(ctx, CreateInput{Name: "C"})
	require.NoError(t, err)

	_, err = uc.Activate(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, c.ID))
	cur, err := uc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, cur.ID)
	assert.Equal(t, 1, countActive(t, uc))

	// deleting an inactive library leaves the selection alone
	require.NoError(t, uc.Delete(ctx, b.ID))
	cur, err = uc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, cur.ID)

	require.NoError(t, uc.Delete(ctx, a.ID))
	_, err = uc.Current(ctx)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	assert.True(t, errors.Is(uc.Delete(ctx, a.ID), errs.ErrNotFound))
}

func TestDelete_Cascades(t *testing.T) {
	uc, db := newUsecase(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, CreateInput{Name: "A"})
	require.NoError(t, err)
	other, err := uc.Create(ctx, CreateInput{Name: "B"})
	require.NoError(t, err)

	repos := sqlstore.Repositories(db)
	seed := func(libraryID string) {
		b := &book.Book{ID: id.NewID32(), LibraryID: libraryID, Title: "T", Author: "A", TotalCopies: 1, AvailableCopies: 0, Status: book.StatusLoaned}
		m := &member.Member{ID: id.NewID32(), LibraryID: libraryID, Name: "M", Status: member.StatusActive}
		now := time.Now().UTC()
		l := &loan.Loan{ID: id.NewID32(), BookID: b.ID, MemberID: m.ID, LibraryID: libraryID, LoanDate: now, DueDate: now.Add(time.Hour), Status: loan.StatusActive}
		require.NoError(t, repos.Books.Create(ctx, b))
		require.NoError(t, repos.Members.Create(ctx, m))
		require.NoError(t, repos.Loans.Create(ctx, l))
	}
	seed(a.ID)
	seed(other.ID)

	require.NoError(t, uc.Delete(ctx, a.ID))

	for _, tc := range []struct {
		libraryID string
		want      int64
	}{{a.ID, 0}, {other.ID, 1}} {
		n, err := repos.Books.Count(ctx, tc.libraryID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, n, "books")
		n, err = repos.Members.CountByStatus(ctx, tc.libraryID, "")
		require.NoError(t, err)
		assert.Equal(t, tc.want, n, "members")
		n, err = repos.Loans.CountByStatus(ctx, tc.libraryID, "")
		require.NoError(t, err)
		assert.Equal(t, tc.want, n, "loans")
	}
}
