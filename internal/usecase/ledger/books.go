package ledger

import (
	"context"
	"strings"

	"biblios/internal/domain/book"
	"biblios/internal/domain/errs"
	"biblios/internal/domain/uow"
	"biblios/internal/validation"
	"biblios/pkg/id"
	"biblios/pkg/isbn"
)

func (u *Usecase) CreateBook(ctx context.Context, in CreateBookInput) (*BookDTO, error) {
	const op = "ledger.CreateBook"
	if err := validation.Struct(op, in); err != nil {
		return nil, err
	}
	if err := u.checkYear(op, in.Year); err != nil {
		return nil, err
	}
	if in.TotalCopies == 0 {
		in.TotalCopies = 1
	}

	var out *BookDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		b := &book.Book{
			ID:              id.NewID32(),
			Title:           strings.TrimSpace(in.Title),
			Author:          strings.TrimSpace(in.Author),
			Category:        strings.TrimSpace(in.Category),
			Publisher:       strings.TrimSpace(in.Publisher),
			Year:            in.Year,
			TotalCopies:     in.TotalCopies,
			AvailableCopies: in.TotalCopies,
			Location:        strings.TrimSpace(in.Location),
			Status:          book.StatusAvailable,
		}
		if in.ISBN != "" {
			n := isbn.Normalize(in.ISBN)
			b.ISBN = &n
		}

		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			libraryID, err := lockLibrary(ctx, r, op, in.LibraryID)
			if err != nil {
				return err
			}
			b.LibraryID = libraryID
			if b.ISBN != nil {
				taken, err := r.Books.ExistsISBN(ctx, libraryID, *b.ISBN, "")
				if err != nil {
					return err
				}
				if taken {
					return errs.Conflict(op, "isbn %s already registered in this library", *b.ISBN)
				}
			}
			if err := r.Books.Create(ctx, b); err != nil {
				return err
			}
			out = toBookDTO(b)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "book created", "book_id", out.ID, "library_id", out.LibraryID, "copies", out.TotalCopies)
	return out, nil
}

func (u *Usecase) GetBook(ctx context.Context, bookID string) (*BookDTO, error) {
	var out *BookDTO
	err := u.run(ctx, "ledger.GetBook", func(ctx context.Context) error {
		b, err := u.repos.Books.GetByID(ctx, bookID)
		if err != nil {
			return err
		}
		out = toBookDTO(b)
		return nil
	})
	return out, err
}

func (u *Usecase) ListBooks(ctx context.Context, q BookQuery) ([]BookDTO, error) {
	const op = "ledger.ListBooks"
	if q.Status != "" && !q.Status.Valid() {
		return nil, errs.Validation(op, "unknown book status %q", q.Status)
	}
	var out []BookDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		libraryID, err := u.resolveLibrary(ctx, op, q.LibraryID)
		if err != nil {
			return err
		}
		books, err := u.repos.Books.List(ctx, book.Query{
			LibraryID: libraryID,
			Search:    q.Search,
			Category:  q.Category,
			Status:    q.Status,
			Limit:     q.Limit,
			Offset:    q.Offset,
		})
		if err != nil {
			return err
		}
		out = make([]BookDTO, 0, len(books))
		for i := range books {
			out = append(out, *toBookDTO(&books[i]))
		}
		return nil
	})
	return out, err
}

// UpdateBook patches descriptive fields and the copy total. Availability is
// recomputed from the loans still out, so the total can never drop below them.
func (u *Usecase) UpdateBook(ctx context.Context, bookID string, in UpdateBookInput) (*BookDTO, error) {
	const op = "ledger.UpdateBook"
	if err := validation.Struct(op, in); err != nil {
		return nil, err
	}
	if in.Year != nil {
		if err := u.checkYear(op, *in.Year); err != nil {
			return nil, err
		}
	}
	var newISBN *string
	if in.ISBN != nil && strings.TrimSpace(*in.ISBN) != "" {
		if !isbn.Valid(*in.ISBN) {
			return nil, errs.Validation(op, "isbn must be a valid ISBN-10 or ISBN-13")
		}
		n := isbn.Normalize(*in.ISBN)
		newISBN = &n
	}

	var out *BookDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		unlock, err := u.lockBook(ctx, bookID)
		if err != nil {
			return err
		}
		defer unlock()

		return u.uow.WithinBookTx(ctx, bookID, func(r uow.Repos, b *book.Book) error {
			if in.ISBN != nil {
				if newISBN != nil && *newISBN != b.ISBNValue() {
					taken, err := r.Books.ExistsISBN(ctx, b.LibraryID, *newISBN, b.ID)
					if err != nil {
						return err
					}
					if taken {
						return errs.Conflict(op, "isbn %s already registered in this library", *newISBN)
					}
				}
				b.ISBN = newISBN
			}
			setTrimmed(&b.Title, in.Title)
			setTrimmed(&b.Author, in.Author)
			setTrimmed(&b.Category, in.Category)
			setTrimmed(&b.Publisher, in.Publisher)
			setTrimmed(&b.Location, in.Location)
			if in.Year != nil {
				b.Year = *in.Year
			}
			if in.TotalCopies != nil {
				onLoan, err := r.Loans.CountOpenByBook(ctx, b.ID)
				if err != nil {
					return err
				}
				if int64(*in.TotalCopies) < onLoan {
					return errs.Validation(op, "total_copies %d is below the %d copies on loan", *in.TotalCopies, onLoan)
				}
				b.TotalCopies = *in.TotalCopies
				b.AvailableCopies = *in.TotalCopies - int(onLoan)
				b.Refresh()
			}
			if err := r.Books.Save(ctx, b); err != nil {
				return err
			}
			out = toBookDTO(b)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "book updated", "book_id", bookID)
	return out, nil
}

// SetBookStatus sets a manual maintenance/lost override. Passing "available"
// clears the override and the status is derived from the counters again.
func (u *Usecase) SetBookStatus(ctx context.Context, bookID string, status book.Status) (*BookDTO, error) {
	const op = "ledger.SetBookStatus"
	if !status.Forced() && status != book.StatusAvailable {
		return nil, errs.Validation(op, "status must be one of: available maintenance lost")
	}

	var out *BookDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		unlock, err := u.lockBook(ctx, bookID)
		if err != nil {
			return err
		}
		defer unlock()

		return u.uow.WithinBookTx(ctx, bookID, func(r uow.Repos, b *book.Book) error {
			if status.Forced() {
				b.Status = status
			} else {
				b.Status = book.DeriveStatus(b.AvailableCopies, b.TotalCopies)
			}
			if err := r.Books.Save(ctx, b); err != nil {
				return err
			}
			out = toBookDTO(b)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "book status set", "book_id", bookID, "status", out.Status)
	return out, nil
}

// DeleteBook refuses while any loan on the book is open; otherwise the book
// and its loan history go together.
func (u *Usecase) DeleteBook(ctx context.Context, bookID string) error {
	const op = "ledger.DeleteBook"

	err := u.run(ctx, op, func(ctx context.Context) error {
		unlock, err := u.lockBook(ctx, bookID)
		if err != nil {
			return err
		}
		defer unlock()

		return u.uow.WithinBookTx(ctx, bookID, func(r uow.Repos, b *book.Book) error {
			open, err := r.Loans.CountOpenByBook(ctx, b.ID)
			if err != nil {
				return err
			}
			if open > 0 {
				return errs.Conflict(op, "book has %d open loans; return or cancel them first", open)
			}
			if err := r.Loans.DeleteByBook(ctx, b.ID); err != nil {
				return err
			}
			return r.Books.Delete(ctx, b.ID)
		})
	})
	if err != nil {
		return err
	}
	u.log.InfoContext(ctx, "book deleted", "book_id", bookID)
	return nil
}

func (u *Usecase) Categories(ctx context.Context, libraryID string) ([]string, error) {
	const op = "ledger.Categories"
	var out []string
	err := u.run(ctx, op, func(ctx context.Context) error {
		lib, err := u.resolveLibrary(ctx, op, libraryID)
		if err != nil {
			return err
		}
		out, err = u.repos.Books.Categories(ctx, lib)
		return err
	})
	return out, err
}

// year 0 means unknown
func (u *Usecase) checkYear(op string, year int) error {
	if year == 0 {
		return nil
	}
	if latest := u.now().Year() + 1; year < 1 || year > latest {
		return errs.Validation(op, "year must be between 1 and %d", latest)
	}
	return nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
