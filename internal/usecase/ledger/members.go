package ledger

import (
	"context"
	"strings"

	"biblios/internal/domain/errs"
	"biblios/internal/domain/member"
	"biblios/internal/domain/uow"
	"biblios/internal/validation"
	"biblios/pkg/id"
)

func (u *Usecase) CreateMember(ctx context.Context, in CreateMemberInput) (*MemberDTO, error) {
	const op = "ledger.CreateMember"
	if err := validation.Struct(op, in); err != nil {
		return nil, err
	}
	status := member.Status(in.Status)
	if status == "" {
		status = member.StatusActive
	}

	var out *MemberDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			libraryID, err := lockLibrary(ctx, r, op, in.LibraryID)
			if err != nil {
				return err
			}
			m := &member.Member{
				ID:        id.NewID32(),
				LibraryID: libraryID,
				Name:      strings.TrimSpace(in.Name),
				Email:     strings.TrimSpace(in.Email),
				Phone:     strings.TrimSpace(in.Phone),
				Address:   strings.TrimSpace(in.Address),
				Status:    status,
			}
			if err := r.Members.Create(ctx, m); err != nil {
				return err
			}
			out = toMemberDTO(m)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "member created", "member_id", out.ID, "library_id", out.LibraryID)
	return out, nil
}

func (u *Usecase) GetMember(ctx context.Context, memberID string) (*MemberDTO, error) {
	var out *MemberDTO
	err := u.run(ctx, "ledger.GetMember", func(ctx context.Context) error {
		m, err := u.repos.Members.GetByID(ctx, memberID)
		if err != nil {
			return err
		}
		out = toMemberDTO(m)
		return nil
	})
	return out, err
}

func (u *Usecase) ListMembers(ctx context.Context, q MemberQuery) ([]MemberDTO, error) {
	const op = "ledger.ListMembers"
	if q.Status != "" && !q.Status.Valid() {
		return nil, errs.Validation(op, "unknown member status %q", q.Status)
	}
	var out []MemberDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		libraryID, err := u.resolveLibrary(ctx, op, q.LibraryID)
		if err != nil {
			return err
		}
		members, err := u.repos.Members.List(ctx, member.Query{
			LibraryID: libraryID,
			Search:    q.Search,
			Status:    q.Status,
			Limit:     q.Limit,
			Offset:    q.Offset,
		})
		if err != nil {
			return err
		}
		out = make([]MemberDTO, 0, len(members))
		for i := range members {
			out = append(out, *toMemberDTO(&members[i]))
		}
		return nil
	})
	return out, err
}

// UpdateMember patches a member. Status is only ever changed here, never by
// loan activity.
func (u *Usecase) UpdateMember(ctx context.Context, memberID string, in UpdateMemberInput) (*MemberDTO, error) {
	const op = "ledger.UpdateMember"
	if err := validation.Struct(op, in); err != nil {
		return nil, err
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		if err := validation.Validator().Var(strings.TrimSpace(*in.Email), "email"); err != nil {
			return nil, errs.Validation(op, "email must be a valid email address")
		}
	}

	var out *MemberDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			m, err := r.Members.GetByIDForUpdate(ctx, memberID)
			if err != nil {
				return err
			}
			setTrimmed(&m.Name, in.Name)
			setTrimmed(&m.Email, in.Email)
			setTrimmed(&m.Phone, in.Phone)
			setTrimmed(&m.Address, in.Address)
			if in.Status != nil {
				m.Status = member.Status(*in.Status)
			}
			if err := r.Members.Save(ctx, m); err != nil {
				return err
			}
			out = toMemberDTO(m)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "member updated", "member_id", memberID, "status", out.Status)
	return out, nil
}

// DeleteMember refuses while the member still holds books; closed loans are
// removed with the member.
func (u *Usecase) DeleteMember(ctx context.Context, memberID string) error {
	const op = "ledger.DeleteMember"
	err := u.run(ctx, op, func(ctx context.Context) error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			m, err := r.Members.GetByIDForUpdate(ctx, memberID)
			if err != nil {
				return err
			}
			open, err := r.Loans.CountOpenByMember(ctx, m.ID)
			if err != nil {
				return err
			}
			if open > 0 {
				return errs.Conflict(op, "member has %d open loans; return or cancel them first", open)
			}
			if err := r.Loans.DeleteByMember(ctx, m.ID); err != nil {
				return err
			}
			return r.Members.Delete(ctx, m.ID)
		})
	})
	if err != nil {
		return err
	}
	u.log.InfoContext(ctx, "member deleted", "member_id", memberID)
	return nil
}
