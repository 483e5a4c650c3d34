// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
)

// MaintenanceOptions tunes RunDBMaintenance.
type MaintenanceOptions struct {
	// SkipIntegrity disables the SQLite integrity_check.
	SkipIntegrity bool
}

// RunDBMaintenance performs engine-specific housekeeping: PRAGMA optimize,
// VACUUM, WAL checkpoint and integrity_check for SQLite; VACUUM ANALYZE for
// Postgres; OPTIMIZE TABLE for MySQL.
func RunDBMaintenance(ctx context.Context, dbType, dsn string, opts MaintenanceOptions) error {
	driver, err := driverName(dbType)
	if err != nil {
		return err
	}
	sqlDB, err := sqlOpenFunc(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database for maintenance: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	switch dbType {
	case "sqlite":
		// optimize is not available everywhere (e.g. in-memory filesystems)
		if _, err := sqlDB.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			dbLogf("db: sqlite optimize failed (ignored): %v", err)
		}
		if _, err := sqlDB.ExecContext(ctx, "VACUUM;"); err != nil {
			return fmt.Errorf("sqlite vacuum failed: %w", err)
		}
		_, _ = sqlDB.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);")
		if !opts.SkipIntegrity {
			var res string
			if err := sqlDB.QueryRowContext(ctx, "PRAGMA integrity_check;").Scan(&res); err != nil {
				return fmt.Errorf("sqlite integrity_check failed: %w", err)
			}
			if res != "ok" {
				return fmt.Errorf("sqlite integrity_check failed: %s", res)
			}
		}
	case "postgres":
		if _, err := sqlDB.ExecContext(ctx, "VACUUM ANALYZE;"); err != nil {
			return fmt.Errorf("postgres vacuum failed: %w", err)
		}
	case "mysql":
		if _, err := sqlDB.ExecContext(ctx, "OPTIMIZE TABLE users"); err != nil {
			return fmt.Errorf("mysql optimize failed: %w", err)
		}
	}
	return nil
}
