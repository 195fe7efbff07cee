package book

import "context"

type Repository interface {
	Create(ctx context.Context, b *Book) error
	Save(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (*Book, error)
	// GetByIDForUpdate reads the row under a write lock; call inside a tx.
	GetByIDForUpdate(ctx context.Context, id string) (*Book, error)
	ExistsISBN(ctx context.Context, libraryID, isbn, excludeID string) (bool, error)
	List(ctx context.Context, q Query) ([]Book, error)
	Count(ctx context.Context, libraryID string) (int64, error)
	SumCopies(ctx context.Context, libraryID string) (total, available int64, err error)
	Categories(ctx context.Context, libraryID string) ([]string, error)
	Delete(ctx context.Context, id string) error
	DeleteByLibrary(ctx context.Context, libraryID string) error
}
