package membermock

import (
	"context"
	"errors"

	domain "biblios/internal/domain/member"
)

var _ domain.Repository = (*Repo)(nil)

var ErrNotStubbed = errors.New("membermock: not stubbed")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, m *domain.Member) error
	SaveFn             func(ctx context.Context, m *domain.Member) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Member, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Member, error)
	ListFn             func(ctx context.Context, q domain.Query) ([]domain.Member, error)
	CountByStatusFn    func(ctx context.Context, libraryID string, status domain.Status) (int64, error)
	DeleteFn           func(ctx context.Context, id string) error
	DeleteByLibraryFn  func(ctx context.Context, libraryID string) error
}

func (m *Repo) Create(ctx context.Context, v *domain.Member) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, v *domain.Member) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, v)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Member, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) List(ctx context.Context, q domain.Query) ([]domain.Member, error) {
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
