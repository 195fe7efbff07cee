package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) error
	Save(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, q Query) ([]Member, error)
	// CountByStatus counts members of a library; empty status counts all.
	CountByStatus(ctx context.Context, libraryID string, status Status) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByLibrary(ctx context.Context, libraryID string) error
}
