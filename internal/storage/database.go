package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	reporterrors "mcra/internal/errors"
)

// EnsureDatabase connects to the server behind serverDSN and creates the
// report database when it does not exist yet.
func EnsureDatabase(ctx context.Context, serverDSN, name string, logger *slog.Logger) error {
	if !IsValidTableName(name) {
		return reporterrors.Configf("invalid database name: %q", name)
	}

	db, err := sql.Open("mysql", serverDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, db, name)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		return nil
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	logger.Info("created database", "database", name)
	return nil
}

func databaseExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, name).Scan(&exists)
	return exists, err
}
