// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package db opens the gitstory SQLite cache and manages its schema.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/llbbl/gitstory/internal/logging"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const (
	dataDirName = ".gitstory"
	dbFileName  = "gitstory.db"
)

// GetDefaultDBPath returns ~/.gitstory/gitstory.db, creating the directory.
func GetDefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	path := filepath.Join(home, dataDirName, dbFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return path, nil
}

// ResolvePath returns configured when set, otherwise the default path.
// The parent directory of a configured file path is created if missing.
func ResolvePath(configured string) (string, error) {
	switch configured {
	case "":
		return GetDefaultDBPath()
	case MemoryPath:
		return configured, nil
	}
	if err := os.MkdirAll(filepath.Dir(configured), 0o750); err != nil {
		return "", fmt.Errorf("creating database directory: %w", err)
	}
	return configured, nil
}

// Open opens or creates the database at dbPath and checks the connection.
func Open(dbPath string) (*sql.DB, error) {
	log := logging.WithComponent("db").With("path", dbPath)
	log.Debug("opening database")

	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each pooled connection to :memory: would see its own empty database.
	if dbPath == MemoryPath {
		database.SetMaxOpenConns(1)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return database, nil
}

// Close closes database. A nil database is ignored.
func Close(database *sql.DB) error {
	if database == nil {
		return nil
	}
	if err := database.Close(); err != nil {
		logging.WithComponent("db").Error("failed to close database", "error", err)
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
