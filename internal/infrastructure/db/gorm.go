package db

import (
	"context"
	"fmt"
	"time"

	"biblios/internal/config"
	"biblios/internal/domain/book"
	"biblios/internal/domain/library"
	"biblios/internal/domain/loan"
	"biblios/internal/domain/member"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// Network databases get a real pool. SQLite gets one connection: a single
// writer is what serializes ledger transactions there, since it has no
// row-level locks.
func PoolFor(driver string) Pool {
	if driver == config.DriverSQLite {
		return Pool{MaxOpen: 1, MaxIdle: 1}
	}
	return Pool{MaxOpen: 30, MaxIdle: 10, MaxLifetime: 30 * time.Minute, MaxIdleTime: 10 * time.Minute}
}

func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLiteDSN()), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN), nil
	}
	return nil, fmt.Errorf("db: unsupported driver %q", cfg.DBDriver)
}

type options struct {
	pool     Pool
	logLevel logger.LogLevel
}

type Option func(*options)

func WithPool(p Pool) Option { return func(o *options) { o.pool = p } }

func WithLogLevel(l logger.LogLevel) Option { return func(o *options) { o.logLevel = l } }

func Open(cfg *config.Config, opts ...Option) (*gorm.DB, error) {
	dial, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, append([]Option{WithPool(PoolFor(cfg.DBDriver))}, opts...)...)
}

func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{pool: PoolFor(""), logLevel: logger.Warn}
	for _, fn := range opts {
		fn(&o)
	}

	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(o.logLevel),
		TranslateError:       true,
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.pool.MaxOpen)
	sqlDB.SetMaxIdleConns(o.pool.MaxIdle)
	sqlDB.SetConnMaxLifetime(o.pool.MaxLifetime)
	sqlDB.SetConnMaxIdleTime(o.pool.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Models lists every table the ledger owns, in dependency order.
func Models() []any {
	return []any{&library.Library{}, &library.Selection{}, &book.Book{}, &member.Member{}, &loan.Loan{}}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
