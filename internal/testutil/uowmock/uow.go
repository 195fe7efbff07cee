package uowmock

import (
	"context"
	"errors"

	"biblios/internal/domain/book"
	"biblios/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinBookTxFn func(ctx context.Context, bookID string, fn func(r uow.Repos, b *book.Book) error) error
}

// Passthrough runs callbacks directly against repos, loading the book
// through repos.Books.GetByIDForUpdate.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinBookTxFn: func(ctx context.Context, bookID string, fn func(uow.Repos, *book.Book) error) error {
			b, err := repos.Books.GetByIDForUpdate(ctx, bookID)
			if err != nil {
				return err
			}
			return fn(repos, b)
		},
	}
}

func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinBookTx(fn func(context.Context, string, func(uow.Repos, *book.Book) error) error) *UoW {
	m.WithinBookTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinBookTx(ctx context.Context, bookID string, fn func(r uow.Repos, b *book.Book) error) error {
	if m.WithinBookTxFn != nil {
		return m.WithinBookTxFn(ctx, bookID, fn)
	}
	return errUnimplemented
}
