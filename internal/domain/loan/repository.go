package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id string) (*Loan, error)
	// GetByIDForUpdate reads the row under a write lock; call inside a tx.
	GetByIDForUpdate(ctx context.Context, id string) (*Loan, error)
	List(ctx context.Context, q Query) ([]Loan, error)
	// CountByStatus counts loans of a library; empty status counts all.
	CountByStatus(ctx context.Context, libraryID string, status Status) (int64, error)
	CountOpenByBook(ctx context.Context, bookID string) (int64, error)
	CountOpenByMember(ctx context.Context, memberID string) (int64, error)
	// MarkOverdue flips every active loan due before now to overdue and
	// returns how many rows changed.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	DeleteByBook(ctx context.Context, bookID string) error
	DeleteByMember(ctx context.Context, memberID string) error
	DeleteByLibrary(ctx context.Context, libraryID string) error
}
