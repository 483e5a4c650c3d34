// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// SQL drivers for the supported backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// driverName maps a configured database type to its database/sql driver.
func driverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		// The pgx stdlib registers driver name "pgx".
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedType, dbType)
	}
}

// Open connects to the database described by dbType and dsn, applies the
// embedded migrations and returns a long-lived *bun.DB.
func Open(dbType, dsn string) (*bun.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sqlDB, err := sqlOpenFunc(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	configurePool(sqlDB, dbType, dsn)
	dbLogf("db: opened %s driver in %s", driver, time.Since(start))

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migStart := time.Now()
	if err := RunMigrations(sqlDB, dbType); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	dbLogf("db: migrations for %s completed in %s", dbType, time.Since(migStart))

	return createBunDB(sqlDB, dbType), nil
}

// configurePool applies conservative pool limits. Values can be overridden
// through PATHOGRADE_DB_* environment variables.
func configurePool(sqlDB *sql.DB, dbType, dsn string) {
	const (
		defaultMaxOpenConns    = 4
		defaultMaxIdleConns    = 4
		defaultConnMaxLifetime = 5 * time.Minute
	)

	maxOpen := envInt("PATHOGRADE_DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	maxIdle := envInt("PATHOGRADE_DB_MAX_IDLE_CONNS", defaultMaxIdleConns)

	// Each connection to ":memory:" gets its own database, so keep exactly one.
	if dbType == "sqlite" && dsn == ":memory:" {
		maxOpen = 1
		maxIdle = 1
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(defaultConnMaxLifetime)
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// createBunDB wraps sqlDB with the bun dialect matching dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}
