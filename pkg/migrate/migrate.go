package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

const (
	DefaultDir = "pkg/migrate/migrations"

	// dialect is fixed; the SQL files use Postgres types and partial indexes.
	dialect = "postgres"
)

var passthroughCommands = map[string]bool{
	"up":     true,
	"down":   true,
	"status": true,
	"redo":   true,
	"reset":  true,
}

// IsCommand reports whether Run accepts the goose command.
func IsCommand(command string) bool {
	return passthroughCommands[command]
}

func prepare(db *sql.DB, dir string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Run executes one of the pass-through goose commands.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if !IsCommand(command) {
		return fmt.Errorf("unsupported goose command %q", command)
	}
	if err := prepare(db, dir); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion moves the schema up or down to targetVersion.
func MigrateToVersion(ctx context.Context, db *sql.DB, dir string, targetVersion string) error {
	target, err := parseVersion(targetVersion)
	if err != nil {
		return err
	}
	if err := prepare(db, dir); err != nil {
		return err
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if err := goose.DownToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}

func parseVersion(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("target version is required")
	}
	target, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || target <= 0 {
		return 0, fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS)", raw)
	}
	return target, nil
}
