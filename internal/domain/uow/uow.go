package uow

import (
	"context"

	"biblios/internal/domain/book"
	"biblios/internal/domain/library"
	"biblios/internal/domain/loan"
	"biblios/internal/domain/member"
)

// Repos bundles repositories bound to the same transaction.
type Repos struct {
	Libraries library.Repository
	Books     book.Repository
	Members   member.Repository
	Loans     loan.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the book row first, then pass it in
	WithinBookTx(ctx context.Context, bookID string, fn func(r Repos, b *book.Book) error) error
}
