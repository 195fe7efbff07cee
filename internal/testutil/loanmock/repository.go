package loanmock

import (
	"context"
	"errors"
	"time"

	domain "biblios/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// ErrNotStubbed is returned by reads whose function field is nil.
var ErrNotStubbed = errors.New("loanmock: not stubbed")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to no-ops, reads to ErrNotStubbed.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Loan) error
	SaveFn              func(ctx context.Context, l *domain.Loan) error
	GetByIDFn           func(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdateFn  func(ctx context.Context, id string) (*domain.Loan, error)
	ListFn              func(ctx context.Context, q domain.Query) ([]domain.Loan, error)
	CountByStatusFn     func(ctx context.Context, libraryID string, status domain.Status) (int64, error)
	CountOpenByBookFn   func(ctx context.Context, bookID string) (int64, error)
	CountOpenByMemberFn func(ctx context.Context, memberID string) (int64, error)
	MarkOverdueFn       func(ctx context.Context, now time.Time) (int64, error)
	DeleteByBookFn      func(ctx context.Context, bookID string) error
	DeleteByMemberFn    func(ctx context.Context, memberID string) error
	DeleteByLibraryFn   func(ctx context.Context, libraryID string) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) List(ctx context.Context, q domain.Query) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) CountByStatus(ctx context.Context, libraryID string, status domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, libraryID, status)
	}
	return 0, ErrNotStubbed
}

func (m *Repo) CountOpenByBook(ctx context.Context, bookID string) (int64, error) {
	if m.CountOpenByBookFn != nil {
		return m.CountOpenByBookFn(ctx, bookID)
	}
	return 0, ErrNotStubbed
}

func (m *Repo) CountOpenByMember(ctx context.Context, memberID string) (int64, error) {
	if m.CountOpenByMemberFn != nil {
		return m.CountOpenByMemberFn(ctx, memberID)
	}
	return 0, ErrNotStubbed
}

func (m *Repo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.MarkOverdueFn != nil {
		return m.MarkOverdueFn(ctx, now)
	}
	return 0, nil
}

func (m *Repo) DeleteByBook(ctx context.Context, bookID string) error {
	if m.DeleteByBookFn != nil {
		return m.DeleteByBookFn(ctx, bookID)
	}
	return nil
}

func (m *Repo) DeleteByMember(ctx context.Context, memberID string) error {
	if m.DeleteByMemberFn != nil {
		return m.DeleteByMemberFn(ctx, memberID)
	}
	return nil
}

func (m *Repo) DeleteByLibrary(ctx context.Context, libraryID string) error {
	if m.DeleteByLibraryFn != nil {
		return m.DeleteByLibraryFn(ctx, libraryID)
	}
	return nil
}
