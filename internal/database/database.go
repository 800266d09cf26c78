package database

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Options tune the connection pool and gorm logging. Zero values keep the
// driver defaults.
type Options struct {
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     logger.LogLevel
}

func Connect(dsn string) (*gorm.DB, error) {
	return ConnectWithOptions(dsn, Options{})
}

func ConnectWithOptions(dsn string, opts Options) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(opts.LogLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgres(dsn) {
		slog.Info("connecting to PostgreSQL")
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	} else {
		slog.Info("using SQLite", "dsn", dsn)
		db, err = gorm.Open(
			gormsqlite.New(gormsqlite.Config{
				DriverName: "sqlite",
				DSN:        withSQLitePragmas(dsn),
			}),
			gormCfg,
		)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// WithTimeout bounds a single store call. Callers must invoke the returned
// cancel func.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// withSQLitePragmas turns on foreign keys and a busy timeout so concurrent
// writers wait for the lock instead of failing immediately.
func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func logLevel(l logger.LogLevel) logger.LogLevel {
	if l == 0 {
		return logger.Warn
	}
	return l
}
