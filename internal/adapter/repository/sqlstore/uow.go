package sqlstore

import (
	"context"

	"biblios/internal/domain/book"
	"biblios/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// Repositories returns repos bound to the plain (non-tx) handle.
func Repositories(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Libraries: &LibraryRepository{db: db},
		Books:     &BookRepository{db: db},
		Members:   &MemberRepository{db: db},
		Loans:     &LoanRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repositories(tx))
	})
}

func (u *GormUoW) WithinBookTx(ctx context.Context, bookID string, fn func(r uow.Repos, b *book.Book) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := Repositories(tx)
		// lock the book row up-front so counters cannot race
		b, err := r.Books.GetByIDForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		return fn(r, b)
	})
}
