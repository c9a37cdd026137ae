// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/llbbl/gitstory/internal/logging"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// useEmbeddedMigrations points goose at the embedded SQL files. goose keeps
// this in package state, so it is applied before every goose call.
func useEmbeddedMigrations() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return nil
}

// RunMigrations brings the schema up to the newest embedded migration.
func RunMigrations(db *sql.DB) error {
	log := logging.WithComponent("db")
	if err := useEmbeddedMigrations(); err != nil {
		return err
	}

	// A fresh database has no goose table yet and reports an error here.
	before, err := goose.GetDBVersion(db)
	if err != nil {
		before = 0
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Error("failed to run migrations", "error", err)
		return fmt.Errorf("running migrations: %w", err)
	}

	after, err := goose.GetDBVersion(db)
	switch {
	case err != nil:
		log.Debug("could not read schema version", "error", err)
	case after != before:
		log.Info("migrations applied", "from", before, "to", after)
	default:
		log.Debug("schema up to date", "version", after)
	}
	return nil
}

// GetMigrationVersion returns the schema version recorded by goose.
func GetMigrationVersion(db *sql.DB) (int64, error) {
	if err := useEmbeddedMigrations(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("getting migration version: %w", err)
	}
	return version, nil
}
