package ledger

import (
	"context"

	"biblios/internal/domain/loan"
	"biblios/internal/domain/member"
)

// Stats recomputes overdue loans first, so an overdue loan is never counted
// as active.
func (u *Usecase) Stats(ctx context.Context, libraryID string) (*StatsDTO, error) {
	const op = "ledger.Stats"
	var out *StatsDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		lib, err := u.resolveLibrary(ctx, op, libraryID)
		if err != nil {
			return err
		}
		if _, err := u.markOverdue(ctx, u.utcNow()); err != nil {
			return err
		}

		s := &StatsDTO{LibraryID: lib}
		if s.TotalBooks, err = u.repos.Books.Count(ctx, lib); err != nil {
			return err
		}
		if s.TotalCopies, s.AvailableCopies, err = u.repos.Books.SumCopies(ctx, lib); err != nil {
			return err
		}
		if s.TotalMembers, err = u.repos.Members.CountByStatus(ctx, lib, ""); err != nil {
			return err
		}
		if s.ActiveMembers, err = u.repos.Members.CountByStatus(ctx, lib, member.StatusActive); err != nil {
			return err
		}
		counts := []struct {
			status loan.Status
			dst    *int64
		}{
			{loan.StatusActive, &s.ActiveLoans},
			{loan.StatusOverdue, &s.OverdueLoans},
			{loan.StatusCompleted, &s.CompletedLoans},
			{loan.StatusCancelled, &s.CancelledLoans},
		}
		for _, c := range counts {
			if *c.dst, err = u.repos.Loans.CountByStatus(ctx, lib, c.status); err != nil {
				return err
			}
		}
		out = s
		return nil
	})
	return out, err
}
