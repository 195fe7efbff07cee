package ledger

import (
	"context"
	"time"

	"biblios/internal/domain/book"
	"biblios/internal/domain/errs"
	"biblios/internal/domain/loan"
	"biblios/internal/domain/uow"
	"biblios/internal/validation"
	"biblios/pkg/id"
)

// CreateLoan hands out one copy. The availability check and the decrement
// happen under the book's lock, so two requests for the last copy cannot
// both succeed.
func (u *Usecase) CreateLoan(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	const op = "ledger.CreateLoan"
	if err := validation.Struct(op, in); err != nil {
		return nil, err
	}
	now := u.utcNow()
	if !in.DueDate.After(now) {
		return nil, errs.Validation(op, "due_date must be in the future")
	}

	var out *LoanDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		unlock, err := u.lockBook(ctx, in.BookID)
		if err != nil {
			return err
		}
		defer unlock()

		return u.uow.WithinBookTx(ctx, in.BookID, func(r uow.Repos, b *book.Book) error {
			m, err := r.Members.GetByIDForUpdate(ctx, in.MemberID)
			if err != nil {
				return err
			}
			if m.LibraryID != b.LibraryID {
				return errs.Validation(op, "member and book belong to different libraries")
			}
			if !m.CanBorrow() {
				return errs.InvalidMember(op, "member %s is %s", m.ID, m.Status)
			}
			if !b.CheckOut() {
				if b.Status.Forced() {
					return errs.Unavailable(op, "book %s is in %s", b.ID, b.Status)
				}
				return errs.Unavailable(op, "no copies of book %s are available", b.ID)
			}

			l := &loan.Loan{
				ID:        id.NewID32(),
				BookID:    b.ID,
				MemberID:  m.ID,
				LibraryID: b.LibraryID,
				LoanDate:  now,
				DueDate:   in.DueDate.UTC(),
				Status:    loan.StatusActive,
				Notes:     in.Notes,
			}
			if err := r.Books.Save(ctx, b); err != nil {
				return err
			}
			if err := r.Loans.Create(ctx, l); err != nil {
				return err
			}
			out = toLoanDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "loan created", "loan_id", out.ID, "book_id", out.BookID, "member_id", out.MemberID)
	return out, nil
}

// ReturnLoan completes an open loan and puts the copy back.
func (u *Usecase) ReturnLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.closeLoan(ctx, "ledger.ReturnLoan", loanID, loan.StatusCompleted)
}

// CancelLoan voids an open loan created in error; no return date is recorded.
func (u *Usecase) CancelLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.closeLoan(ctx, "ledger.CancelLoan", loanID, loan.StatusCancelled)
}

func (u *Usecase) closeLoan(ctx context.Context, op, loanID string, to loan.Status) (*LoanDTO, error) {
	var out *LoanDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		// the book id never changes, so it is safe to read it unlocked
		cur, err := u.repos.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}

		unlock, err := u.lockBook(ctx, cur.BookID)
		if err != nil {
			return err
		}
		defer unlock()

		return u.uow.WithinBookTx(ctx, cur.BookID, func(r uow.Repos, b *book.Book) error {
			l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			if !l.Close(to, u.utcNow()) {
				return errs.InvalidState(op, "loan %s is already %s", l.ID, l.Status)
			}
			b.CheckIn()
			if err := r.Books.Save(ctx, b); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			out = toLoanDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "loan closed", "loan_id", out.ID, "book_id", out.BookID, "status", out.Status)
	return out, nil
}

// RecomputeOverdue moves every active loan due before now to overdue and
// returns how many changed. Books are never touched.
func (u *Usecase) RecomputeOverdue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := u.run(ctx, "ledger.RecomputeOverdue", func(ctx context.Context) error {
		var err error
		n, err = u.markOverdue(ctx, now)
		return err
	})
	return n, err
}

func (u *Usecase) markOverdue(ctx context.Context, now time.Time) (int64, error) {
	n, err := u.repos.Loans.MarkOverdue(ctx, now.UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		u.log.InfoContext(ctx, "loans marked overdue", "count", n)
	}
	return n, nil
}

func (u *Usecase) GetLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	var out *LoanDTO
	err := u.run(ctx, "ledger.GetLoan", func(ctx context.Context) error {
		if _, err := u.markOverdue(ctx, u.utcNow()); err != nil {
			return err
		}
		l, err := u.repos.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		out = toLoanDTO(l)
		return nil
	})
	return out, err
}

func (u *Usecase) ListLoans(ctx context.Context, q LoanQuery) ([]LoanDTO, error) {
	const op = "ledger.ListLoans"
	if q.Status != "" && !q.Status.Valid() {
		return nil, errs.Validation(op, "unknown loan status %q", q.Status)
	}
	var out []LoanDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		libraryID, err := u.resolveLibrary(ctx, op, q.LibraryID)
		if err != nil {
			return err
		}
		if _, err := u.markOverdue(ctx, u.utcNow()); err != nil {
			return err
		}
		loans, err := u.repos.Loans.List(ctx, loan.Query{
			LibraryID: libraryID,
			BookID:    q.BookID,
			MemberID:  q.MemberID,
			Status:    q.Status,
			Limit:     q.Limit,
			Offset:    q.Offset,
		})
		if err != nil {
			return err
		}
		out = make([]LoanDTO, 0, len(loans))
		for i := range loans {
			out = append(out, *toLoanDTO(&loans[i]))
		}
		return nil
	})
	return out, err
}
