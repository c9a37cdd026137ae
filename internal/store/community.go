// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/llbbl/gitstory/internal/github"
)

// SaveCommunity stores the follower counters for community.Login,
// replacing any earlier values.
func (s *Store) SaveCommunity(community github.Community) error {
	if community.Login == "" {
		return errors.New("community login cannot be empty")
	}

	_, err := s.db.Exec(`
		INSERT INTO community (login, followers, following, public_repos, synced_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(login) DO UPDATE SET
			followers = excluded.followers,
			following = excluded.following,
			public_repos = excluded.public_repos,
			synced_at = excluded.synced_at`,
		community.Login, community.Followers, community.Following, community.PublicRepos,
		encodeTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("saving community for %s: %w", community.Login, err)
	}
	return nil
}

// GetCommunity returns the cached counters for login, or ErrNotFound when
// login was never synced. Logins match regardless of case and the stored
// spelling is returned.
func (s *Store) GetCommunity(login string) (github.Community, error) {
	var c github.Community
	err := s.db.QueryRow(`SELECT login, followers, following, public_repos FROM community WHERE login = ?`, login).
		Scan(&c.Login, &c.Followers, &c.Following, &c.PublicRepos)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return github.Community{}, ErrNotFound
	case err != nil:
		return github.Community{}, fmt.Errorf("querying community for %s: %w", login, err)
	}
	return c, nil
}
