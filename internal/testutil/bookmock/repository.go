package bookmock

import (
	"context"
	"errors"

	domain "biblios/internal/domain/book"
)

var _ domain.Repository = (*Repo)(nil)

var ErrNotStubbed = errors.New("bookmock: not stubbed")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to no-ops, reads to ErrNotStubbed.
type Repo struct {
	CreateFn           func(ctx context.Context, b *domain.Book) error
	SaveFn             func(ctx context.Context, b *domain.Book) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Book, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Book, error)
	ExistsISBNFn       func(ctx context.Context, libraryID, isbn, excludeID string) (bool, error)
	ListFn             func(ctx context.Context, q domain.Query) ([]domain.Book, error)
	CountFn            func(ctx context.Context, libraryID string) (int64, error)
	SumCopiesFn        func(ctx context.Context, libraryID string) (int64, int64, error)
	CategoriesFn       func(ctx context.Context, libraryID string) ([]string, error)
	DeleteFn           func(ctx context.Context, id string) error
	DeleteByLibraryFn  func(ctx context.Context, libraryID string) error
}

func (m *Repo) Create(ctx context.Context, b *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, b *domain.Book) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Book, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) ExistsISBN(ctx context.Context, libraryID, isbn, excludeID string) (bool, error) {
	if m.ExistsISBNFn != nil {
		return m.ExistsISBNFn(ctx, libraryID, isbn, excludeID)
	}
	return false, nil
}

func (m *Repo) List(ctx context.Context, q domain.Query) ([]domain.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) Count(ctx context.Context, libraryID string) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, libraryID)
	}
	return 0, ErrNotStubbed
}

func (m *Repo) SumCopies(ctx context.Context, libraryID string) (int64, int64, error) {
	if m.SumCopiesFn != nil {
		return m.SumCopiesFn(ctx, libraryID)
	}
	return 0, 0, ErrNotStubbed
}

func (m *Repo) Categories(ctx context.Context, libraryID string) ([]string, error) {
	if m.CategoriesFn != nil {
		return m.CategoriesFn(ctx, libraryID)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) DeleteByLibrary(ctx context.Context, libraryID string) error {
	if m.DeleteByLibraryFn != nil {
		return m.DeleteByLibraryFn(ctx, libraryID)
	}
	return nil
}
