// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/llbbl/gitstory/internal/github"
)

const selectRepositories = `SELECT owner, name, description, stars, forks, watchers,
	open_issues, disk_usage, topics, is_archived, is_fork, is_private,
	primary_language, pushed_at, created_at
	FROM repositories`

const upsertRepository = `INSERT OR REPLACE INTO repositories (
	owner, name, full_name, description, stars, forks, watchers, open_issues,
	disk_usage, topics, is_archived, is_fork, is_private, primary_language,
	pushed_at, created_at, synced_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// UpsertRepositories writes repos for owner in a single transaction and stamps
// them with the current sync time. Repositories without an owner get owner.
func (s *Store) UpsertRepositories(owner string, repos []github.Repository) error {
	if len(repos) == 0 {
		return nil
	}

	syncedAt := encodeTime(time.Now())
	return s.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(upsertRepository)
		if err != nil {
			return fmt.Errorf("preparing statement: %w", err)
		}
		defer stmt.Close()

		for _, repo := range repos {
			if repo.Owner == "" {
				repo.Owner = owner
			}
			args, err := repositoryArgs(repo)
			if err != nil {
				return err
			}
			if _, err := stmt.Exec(append(args, syncedAt)...); err != nil {
				return fmt.Errorf("inserting repository %s: %w", repo.FullName(), err)
			}
		}
		return nil
	})
}

// repositoryArgs returns the insert arguments for repo, excluding synced_at.
func repositoryArgs(repo github.Repository) ([]any, error) {
	var topics sql.NullString
	if len(repo.Topics) > 0 {
		data, err := json.Marshal(repo.Topics)
		if err != nil {
			return nil, fmt.Errorf("encoding topics for %s: %w", repo.FullName(), err)
		}
		topics = optional(string(data))
	}

	return []any{
		repo.Owner, repo.Name, repo.FullName(),
		optional(repo.Description),
		repo.StargazerCount, repo.ForkCount, repo.WatcherCount, repo.OpenIssueCount,
		repo.DiskUsage,
		topics,
		repo.IsArchived, repo.IsFork, repo.IsPrivate,
		optional(repo.PrimaryLanguage),
		encodeTime(repo.PushedAt), encodeTime(repo.CreatedAt),
	}, nil
}

// GetRepositories returns every cached repository of owner ordered by name.
// An unknown owner yields an empty slice.
func (s *Store) GetRepositories(owner string) ([]github.Repository, error) {
	rows, err := s.db.Query(selectRepositories+` WHERE owner = ? ORDER BY name`, owner)
	if err != nil {
		return nil, fmt.Errorf("querying repositories: %w", err)
	}
	defer rows.Close()

	repos := []github.Repository{}
	for rows.Next() {
		repo, err := readRepository(rows)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating repositories: %w", err)
	}
	return repos, nil
}

// GetRepository returns one cached repository or ErrNotFound.
func (s *Store) GetRepository(owner, name string) (*github.Repository, error) {
	repo, err := readRepository(s.db.QueryRow(selectRepositories+` WHERE owner = ? AND name = ?`, owner, name))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("querying repository %s/%s: %w", owner, name, err)
	}
	return &repo, nil
}

// DeleteStaleRepositories removes owner's repositories last synced before
// olderThan and returns how many were removed.
func (s *Store) DeleteStaleRepositories(owner string, olderThan time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM repositories WHERE owner = ? AND synced_at < ?`,
		owner, encodeTime(olderThan))
	if err != nil {
		return 0, fmt.Errorf("deleting stale repositories: %w", err)
	}
	return result.RowsAffected()
}

// GetLastSyncTime returns the newest sync stamp among owner's repositories,
// or the zero time when nothing is cached.
func (s *Store) GetLastSyncTime(owner string) (time.Time, error) {
	var latest sql.NullString
	if err := s.db.QueryRow(`SELECT MAX(synced_at) FROM repositories WHERE owner = ?`, owner).Scan(&latest); err != nil {
		return time.Time{}, fmt.Errorf("querying last sync time: %w", err)
	}
	return decodeNullTime("synced_at", latest)
}

// CountRepositories returns the number of cached repositories across all owners.
func (s *Store) CountRepositories() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM repositories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting repositories: %w", err)
	}
	return n, nil
}

// readRepository scans one row selected with selectRepositories.
func readRepository(row scanner) (github.Repository, error) {
	var repo github.Repository
	var description, language, topics, pushedAt, createdAt sql.NullString
	err := row.Scan(
		&repo.Owner, &repo.Name, &description,
		&repo.StargazerCount, &repo.ForkCount, &repo.WatcherCount, &repo.OpenIssueCount,
		&repo.DiskUsage, &topics,
		&repo.IsArchived, &repo.IsFork, &repo.IsPrivate,
		&language, &pushedAt, &createdAt,
	)
	if err != nil {
		return github.Repository{}, err
	}

	repo.Description = description.String
	repo.PrimaryLanguage = language.String
	if topics.Valid && topics.String != "" {
		if err := json.Unmarshal([]byte(topics.String), &repo.Topics); err != nil {
			return github.Repository{}, fmt.Errorf("parsing topics of %s: %w", repo.FullName(), err)
		}
	}
	if repo.PushedAt, err = decodeNullTime("pushed_at", pushedAt); err != nil {
		return github.Repository{}, err
	}
	if repo.CreatedAt, err = decodeNullTime("created_at", createdAt); err != nil {
		return github.Repository{}, err
	}
	return repo, nil
}
