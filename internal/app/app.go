// Package app wires config, storage and usecases into one process-wide
// container shared by the API server and the admin CLI.
package app

import (
	"context"
	"log/slog"

	"biblios/internal/adapter/repository/sqlstore"
	"biblios/internal/config"
	"biblios/internal/infrastructure/cache"
	"biblios/internal/infrastructure/db"
	"biblios/internal/infrastructure/logging"
	"biblios/internal/usecase/ledger"
	"biblios/internal/usecase/library"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Log    *slog.Logger
	DB     *gorm.DB
	// nil unless REDIS_ADDR is set
	Redis *redis.Client

	Ledger    *ledger.Usecase
	Libraries *library.Usecase
}

type Options struct {
	// Migrate runs the schema migration after connecting.
	Migrate bool
	// SkipRedis leaves Redis nil even when configured (CLI commands).
	SkipRedis bool
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	gdb, err := db.Open(cfg, db.WithLogLevel(logging.GormLevel(cfg.LogLevel)))
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.DBDriver)
	}
	a := &App{Config: cfg, Log: log, DB: gdb}
	if opts.Migrate {
		if err := db.Migrate(gdb); err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	if cfg.RedisAddr != "" && !opts.SkipRedis {
		rdb, err := cache.Open(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = rdb
	}

	repos := sqlstore.Repositories(gdb)
	tx := sqlstore.NewGormUoW(gdb)
	a.Ledger = ledger.NewUsecase(repos, tx, ledger.WithLogger(log), ledger.WithTimeout(cfg.OpTimeout))
	a.Libraries = library.NewUsecase(repos.Libraries, tx, log, cfg.OpTimeout)
	return a, nil
}

func (a *App) Close() error {
	var first error
	if a.Redis != nil {
		first = a.Redis.Close()
	}
	if a.DB != nil {
		if err := db.Close(a.DB); err != nil && first == nil {
			first = err
		}
	}
	return first
}
