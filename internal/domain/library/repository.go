package library

import "context"

type Repository interface {
	Create(ctx context.Context, l *Library) error
	Save(ctx context.Context, l *Library) error
	GetByID(ctx context.Context, id string) (*Library, error)
	// GetByIDForUpdate also locks the row until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Library, error)
	// ExistsByName ignores the library with id excludeID (empty: none).
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	// List returns libraries oldest first.
	List(ctx context.Context) ([]Library, error)
	Delete(ctx context.Context, id string) error

	// Activate makes id the only active library, atomically.
	Activate(ctx context.Context, id string) error
	// ActiveID returns the selected library id or a not-found error.
	ActiveID(ctx context.Context) (string, error)
	ClearSelection(ctx context.Context) error
}
