// Package ledger keeps books, members and loans consistent: copy counters,
// book status and loan states change together or not at all.
package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"biblios/internal/domain/errs"
	"biblios/internal/domain/library"
	"biblios/internal/domain/uow"
	"biblios/pkg/keylock"
)

const defaultTimeout = 5 * time.Second

type Usecase struct {
	repos   uow.Repos
	uow     uow.UnitOfWork
	locks   *keylock.Locker
	log     *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

type Option func(*Usecase)

func WithLogger(l *slog.Logger) Option {
	return func(u *Usecase) {
		if l != nil {
			u.log = l
		}
	}
}

// WithTimeout bounds every operation, storage calls included.
func WithTimeout(d time.Duration) Option {
	return func(u *Usecase) {
		if d > 0 {
			u.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		if now != nil {
			u.now = now
		}
	}
}

// NewUsecase: repos serve plain reads, tx runs the mutating flows.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		repos:   repos,
		uow:     tx,
		locks:   keylock.New(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// run executes fn under the operation timeout and classifies whatever it
// returns into the error taxonomy.
func (u *Usecase) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	err := errs.Classify(op, fn(ctx))
	if errs.KindOf(err) == errs.KindStorage {
		u.log.ErrorContext(ctx, "storage failure", "op", op, "err", err)
	}
	return err
}

// resolveLibrary returns libraryID after checking it exists, or the active
// library when libraryID is empty.
func (u *Usecase) resolveLibrary(ctx context.Context, op, libraryID string) (string, error) {
	return resolveIn(ctx, u.repos.Libraries, op, libraryID, false)
}

// lockLibrary resolves like resolveLibrary within r's transaction and holds
// the library row until it ends, so a library delete cannot run underneath
// an insert into that library.
func lockLibrary(ctx context.Context, r uow.Repos, op, libraryID string) (string, error) {
	return resolveIn(ctx, r.Libraries, op, libraryID, true)
}

func resolveIn(ctx context.Context, libs library.Repository, op, libraryID string, forUpdate bool) (string, error) {
	if libraryID == "" {
		active, err := libs.ActiveID(ctx)
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.NotFound(op, "no active library")
		}
		if err != nil {
			return "", err
		}
		if !forUpdate {
			return active, nil
		}
		libraryID = active
	}
	get := libs.GetByID
	if forUpdate {
		get = libs.GetByIDForUpdate
	}
	if _, err := get(ctx, libraryID); err != nil {
		return "", err
	}
	return libraryID, nil
}

// lockBook serializes ledger writes on one book. The wait counts against ctx.
func (u *Usecase) lockBook(ctx context.Context, bookID string) (unlock func(), err error) {
	return u.locks.LockContext(ctx, bookID)
}

func (u *Usecase) utcNow() time.Time { return u.now().UTC() }
