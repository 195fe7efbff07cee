package librarymock

import (
	"context"
	"errors"

	domain "biblios/internal/domain/library"
)

var _ domain.Repository = (*Repo)(nil)

var ErrNotStubbed = errors.New("librarymock: not stubbed")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Library) error
	SaveFn             func(ctx context.Context, l *domain.Library) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Library, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Library, error)
	ExistsByNameFn     func(ctx context.Context, name, excludeID string) (bool, error)
	ListFn             func(ctx context.Context) ([]domain.Library, error)
	DeleteFn           func(ctx context.Context, id string) error
	ActivateFn         func(ctx context.Context, id string) error
	ActiveIDFn         func(ctx context.Context) (string, error)
	ClearSelectionFn   func(ctx context.Context) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Library) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Library) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Library, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Library, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	if m.ExistsByNameFn != nil {
		return m.ExistsByNameFn(ctx, name, excludeID)
	}
	return false, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Library, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, ErrNotStubbed
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) Activate(ctx context.Context, id string) error {
	if m.ActivateFn != nil {
		return m.ActivateFn(ctx, id)
	}
	return nil
}

func (m *Repo) ActiveID(ctx context.Context) (string, error) {
	if m.ActiveIDFn != nil {
		return m.ActiveIDFn(ctx)
	}
	return "", ErrNotStubbed
}

func (m *Repo) ClearSelection(ctx context.Context) error {
	if m.ClearSelectionFn != nil {
		return m.ClearSelectionFn(ctx)
	}
	return nil
}
