package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/yungbote/techverse/internal/platform/logger"
)

type Options struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// Service owns the connection pool. It is built once at startup and handed
// to the repos; nothing else opens connections.
type Service struct {
	db      *gorm.DB
	log     *logger.Logger
	dialect Dialect
}

func Open(baseLog *logger.Logger, opts Options) (*Service, error) {
	serviceLog := baseLog.With("service", "DBService")

	target, err := ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if err := target.ensureDir(); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	var dialector gorm.Dialector
	switch target.Dialect {
	case DialectPostgres:
		dialector = postgres.Open(target.DSN)
	default:
		// The pure-Go modernc driver registers itself as "sqlite".
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: target.DSN})
	}

	slow := opts.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormLogger.New(
		gormWriter{log: serviceLog},
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	theDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormLog,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target.Dialect, err)
	}

	sqlDB, err := theDB.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	maxOpen := opts.MaxOpenConns
	if target.InMemory {
		// every connection to :memory: would otherwise see its own empty database
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	serviceLog.Info("Database connected", "dialect", string(target.Dialect), "database_url", opts.URL)
	return &Service{db: theDB, log: serviceLog, dialect: target.Dialect}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Dialect() Dialect { return s.dialect }

func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormWriter routes gorm's slow-query and error output into the zap logger.
type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...))
}
