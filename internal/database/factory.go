package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialect names as reported by gorm's dialectors
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
	DialectMySQL    = "mysql"
)

// Connector hands out a fresh connection per call.
type Connector interface {
	Open(ctx context.Context) (*Conn, error)
}

// ConnectionFactory opens a new, independent connection for every call to Open.
// It holds no pool of its own.
type ConnectionFactory struct {
	dialect string
	dsn     string
	logger  gormlogger.Interface
}

var _ Connector = (*ConnectionFactory)(nil)

// NewConnectionFactory resolves the driver for databaseURL. Supported schemes are
// postgres://, postgresql://, sqlite://<path> and mysql://<go-sql-driver dsn>.
func NewConnectionFactory(databaseURL string, logger *zap.Logger) (*ConnectionFactory, error) {
	dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionFactory{
		dialect: dialect,
		dsn:     dsn,
		logger: gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}, nil
}

// ParseURL splits a database URL into a dialect name and the DSN its driver expects.
func ParseURL(databaseURL string) (dialect, dsn string, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DialectPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(databaseURL, "sqlite://"), nil
	case strings.HasPrefix(databaseURL, "mysql://"):
		return DialectMySQL, strings.TrimPrefix(databaseURL, "mysql://"), nil
	}
	return "", "", errors.Errorf("unsupported database URL: %s", databaseURL)
}

// Dialect returns the dialect the factory connects with
func (f *ConnectionFactory) Dialect() string {
	return f.dialect
}

func (f *ConnectionFactory) dialector() gorm.Dialector {
	switch f.dialect {
	case DialectPostgres:
		return postgres.Open(f.dsn)
	case DialectMySQL:
		return mysql.Open(f.dsn)
	default:
		return sqlite.Open(f.dsn)
	}
}

// Open connects to the database. The handle is limited to one physical connection,
// so statements issued through it share session state. Callers must Close it.
func (f *ConnectionFactory) Open(ctx context.Context) (*Conn, error) {
	db, err := gorm.Open(f.dialector(), &gorm.Config{
		Logger:                 f.logger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s connection", f.dialect)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "access connection handle")
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &Conn{DB: db.WithContext(ctx), sqlDB: sqlDB, dialect: f.dialect}, nil
}

// Conn is a single database connection bound to a context
type Conn struct {
	*gorm.DB
	sqlDB   *sql.DB
	dialect string
}

// Dialect returns postgres, sqlite or mysql
func (c *Conn) Dialect() string {
	return c.dialect
}

// Close releases the connection
func (c *Conn) Close() error {
	return c.sqlDB.Close()
}
