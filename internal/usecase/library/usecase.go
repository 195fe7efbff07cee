// Package library manages library tenants and the single active selection.
package library

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"biblios/internal/domain/errs"
	"biblios/internal/domain/library"
	"biblios/internal/domain/uow"
	"biblios/internal/validation"
	"biblios/pkg/id"
)

type Usecase struct {
	repo    library.Repository
	uow     uow.UnitOfWork
	log     *slog.Logger
	timeout time.Duration

	// mu guards the active selection: create, update, activate and delete
	// all run one at a time.
	mu sync.Mutex
}

func NewUsecase(repo library.Repository, tx uow.UnitOfWork, log *slog.Logger, timeout time.Duration) *Usecase {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Usecase{repo: repo, uow: tx, log: log, timeout: timeout}
}

func (u *Usecase) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	err := errs.Classify(op, fn(ctx))
	if errs.KindOf(err) == errs.KindStorage {
		u.log.ErrorContext(ctx, "storage failure", "op", op, "err", err)
	}
	return err
}

// Create registers a library. The first one ever created becomes active.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*LibraryDTO, error) {
	const op = "library.Create"
	if err := validation.Struct(op, in); err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	l := &library.Library{
		ID:      id.NewID32(),
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	err := u.run(ctx, op, func(ctx context.Context) error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			taken, err := r.Libraries.ExistsByName(ctx, l.Name, "")
			if err != nil {
				return err
			}
			if taken {
				return errs.Conflict(op, "library %q already exists", l.Name)
			}
			if err := r.Libraries.Create(ctx, l); err != nil {
				return err
			}
			// a selection already exists (or the lookup failed)
			if _, err := r.Libraries.ActiveID(ctx); !errors.Is(err, errs.ErrNotFound) {
				return err
			}
			if err := r.Libraries.Activate(ctx, l.ID); err != nil {
				return err
			}
			l.Active = true
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "library created", "library_id", l.ID, "active", l.Active)
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, libraryID string) (*LibraryDTO, error) {
	var out *LibraryDTO
	err := u.run(ctx, "library.Get", func(ctx context.Context) error {
		l, err := u.repo.GetByID(ctx, libraryID)
		if err != nil {
			return err
		}
		out = toDTO(l)
		return nil
	})
	return out, err
}

// List returns every library, oldest first.
func (u *Usecase) List(ctx context.Context) ([]LibraryDTO, error) {
	var out []LibraryDTO
	err := u.run(ctx, "library.List", func(ctx context.Context) error {
		libs, err := u.repo.List(ctx)
		if err != nil {
			return err
		}
		out = make([]LibraryDTO, 0, len(libs))
		for i := range libs {
			out = append(out, *toDTO(&libs[i]))
		}
		return nil
	})
	return out, err
}

func (u *Usecase) Update(ctx context.Context, libraryID string, in UpdateInput) (*LibraryDTO, error) {
	const op = "library.Update"
	if err := validation.Struct(op, in); err != nil {
		return nil, err
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		if err := validation.Validator().Var(strings.TrimSpace(*in.Email), "email"); err != nil {
			return nil, errs.Validation(op, "email must be a valid email address")
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var out *LibraryDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			l, err := r.Libraries.GetByID(ctx, libraryID)
			if err != nil {
				return err
			}
			if in.Name != nil {
				name := strings.TrimSpace(*in.Name)
				taken, err := r.Libraries.ExistsByName(ctx, name, l.ID)
				if err != nil {
					return err
				}
				if taken {
					return errs.Conflict(op, "library %q already exists", name)
				}
				l.Name = name
			}
			for _, f := range []struct {
				dst *string
				v   *string
			}{{&l.Email, in.Email}, {&l.Phone, in.Phone}, {&l.Address, in.Address}} {
				if f.v != nil {
					*f.dst = strings.TrimSpace(*f.v)
				}
			}
			if err := r.Libraries.Save(ctx, l); err != nil {
				return err
			}
			out = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "library updated", "library_id", libraryID)
	return out, nil
}

// Activate makes libraryID the only active library.
func (u *Usecase) Activate(ctx context.Context, libraryID string) (*LibraryDTO, error) {
	const op = "library.Activate"

	u.mu.Lock()
	defer u.mu.Unlock()

	var out *LibraryDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			l, err := r.Libraries.GetByID(ctx, libraryID)
			if err != nil {
				return err
			}
			if err := r.Libraries.Activate(ctx, l.ID); err != nil {
				return err
			}
			l.Active = true
			out = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "library activated", "library_id", libraryID)
	return out, nil
}

// Current returns the active library, or a not-found error when none exists.
func (u *Usecase) Current(ctx context.Context) (*LibraryDTO, error) {
	const op = "library.Current"
	var out *LibraryDTO
	err := u.run(ctx, op, func(ctx context.Context) error {
		activeID, err := u.repo.ActiveID(ctx)
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound(op, "no active library")
		}
		if err != nil {
			return err
		}
		l, err := u.repo.GetByID(ctx, activeID)
		if err != nil {
			return err
		}
		out = toDTO(l)
		return nil
	})
	return out, err
}

// Delete removes a library with its books, members and loans. When the active
// library goes, the oldest remaining one takes over.
func (u *Usecase) Delete(ctx context.Context, libraryID string) error {
	const op = "library.Delete"

	u.mu.Lock()
	defer u.mu.Unlock()

	var successor string
	err := u.run(ctx, op, func(ctx context.Context) error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			// book and member inserts lock this row too, so none can slip in
			// between the cascade and the final delete
			l, err := r.Libraries.GetByIDForUpdate(ctx, libraryID)
			if err != nil {
				return err
			}
			activeID, err := r.Libraries.ActiveID(ctx)
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return err
			}

			if err := r.Loans.DeleteByLibrary(ctx, l.ID); err != nil {
				return err
			}
			if err := r.Members.DeleteByLibrary(ctx, l.ID); err != nil {
				return err
			}
			if err := r.Books.DeleteByLibrary(ctx, l.ID); err != nil {
				return err
			}
			if err := r.Libraries.Delete(ctx, l.ID); err != nil {
				return err
			}
			if activeID != l.ID {
				return nil
			}

			rest, err := r.Libraries.List(ctx)
			if err != nil {
				return err
			}
			if len(rest) == 0 {
				return r.Libraries.ClearSelection(ctx)
			}
			successor = rest[0].ID
			return r.Libraries.Activate(ctx, successor)
		})
	})
	if err != nil {
		return err
	}
	u.log.InfoContext(ctx, "library deleted", "library_id", libraryID, "activated", successor)
	return nil
}
