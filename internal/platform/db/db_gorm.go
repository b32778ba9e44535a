// Package db opens the gorm connection used by every repository.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported values of Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// retryInterval is the pause between two connection attempts.
const retryInterval = 3 * time.Second

// Config holds the connection settings read from the environment.
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string // Cloud SQL instance; when set, a unix socket is used instead of Host/Port
	SQLitePath   string
}

// LoadConfigFromEnv reads DB_* variables. The driver defaults to sqlite and
// the sqlite file to ./news.db.
func LoadConfigFromEnv() Config {
	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if driver == "" {
		driver = DriverSQLite
	}
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "./news.db"
	}
	return Config{
		Driver:       driver,
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		SQLitePath:   path,
	}
}

// BuildDSN renders the driver specific connection string.
// All drivers are pinned to UTC so stored timestamps round-trip unchanged.
func BuildDSN(cfg Config) string {
	switch cfg.Driver {
	case DriverMySQL:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	case DriverPostgres:
		host := cfg.Host
		if cfg.InstanceName != "" {
			host = "/cloudsql/" + cfg.InstanceName
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			host, cfg.User, cfg.Password, cfg.Name)
		if cfg.Port != "" && cfg.InstanceName == "" {
			dsn += " port=" + cfg.Port
		}
		return dsn
	default:
		// go-sqlite3 enforces foreign keys per connection only when asked to.
		return cfg.SQLitePath + "?_foreign_keys=on"
	}
}

// Opener opens a gorm connection for a DSN. Tests replace it to avoid a real server.
type Opener func(dsn string) (*gorm.DB, error)

// NewOpener returns the Opener for a driver name.
func NewOpener(driver string) (Opener, error) {
	var dialect func(string) gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialect = sqlite.Open
	case DriverMySQL:
		dialect = gmysql.Open
	case DriverPostgres:
		dialect = postgres.Open
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialect(dsn), GormConfig())
	}, nil
}

// GormConfig is the gorm configuration shared by the server and the tests.
// Driver errors are translated so constraint violations surface as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated, and every
// autoCreateTime column is filled from a UTC clock.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
// Databases started next to the app (docker compose, Cloud SQL proxy) are
// often not ready on the first attempt.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects using cfg, retrying for up to a minute.
func OpenDB(cfg Config) (*gorm.DB, error) {
	open, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, open)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		// A single writer avoids SQLITE_BUSY between pooled connections.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	slog.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the tables of the given models, in order.
// Referenced tables must come before the tables that point at them.
func Migrate(db *gorm.DB, models ...any) error {
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	return nil
}
