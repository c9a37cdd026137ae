// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package store caches repositories and community stats in SQLite so that
// stories can be rebuilt offline.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store reads and writes the gitstory cache tables.
type Store struct {
	db *sql.DB
}

// New wraps an open, migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// withTx runs fn inside a transaction and commits when fn succeeds.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Times are stored as UTC text at second precision. synced_at comparisons
// rely on this layout sorting lexically.
const timeLayout = "2006-01-02 15:04:05"

// readLayouts are tried in order when decoding stored times.
var readLayouts = []string{
	timeLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	time.RFC3339Nano,
}

// encodeTime returns the stored form of t, or NULL for the zero time.
func encodeTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

// decodeTime parses a stored time. The empty string decodes to the zero time.
func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}

// decodeNullTime decodes a nullable time column named column.
func decodeNullTime(column string, v sql.NullString) (time.Time, error) {
	if !v.Valid {
		return time.Time{}, nil
	}
	t, err := decodeTime(v.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// optional maps the empty string to NULL.
func optional(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
