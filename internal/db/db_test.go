// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// migrated returns an in-memory database with every migration applied.
func migrated(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { Close(database) })
	require.NoError(t, RunMigrations(database))
	return database
}

func TestOpen(t *testing.T) {
	t.Run("in memory", func(t *testing.T) {
		database, err := Open(MemoryPath)
		require.NoError(t, err)
		defer Close(database)
		assert.NoError(t, database.Ping())
	})

	t.Run("file is created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "story.db")
		database, err := Open(path)
		require.NoError(t, err)
		defer Close(database)
		assert.FileExists(t, path)
	})
}

func TestRunMigrations_Schema(t *testing.T) {
	database := migrated(t)

	queries := map[string]string{
		"repositories": `SELECT id, owner, name, full_name, description, stars, forks, watchers,
			open_issues, disk_usage, topics, is_archived, is_fork, is_private, primary_language,
			pushed_at, created_at, synced_at FROM repositories`,
		"community": `SELECT login, followers, following, public_repos, synced_at FROM community`,
	}
	for table, query := range queries {
		t.Run(table, func(t *testing.T) {
			_, err := database.Exec(query)
			assert.NoError(t, err)
		})
	}
}

func TestRunMigrations_TwiceKeepsVersion(t *testing.T) {
	database := migrated(t)

	require.NoError(t, RunMigrations(database))

	version, err := GetMigrationVersion(database)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestClose_NilDB(t *testing.T) {
	assert.NoError(t, Close(nil))
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	custom := filepath.Join(t.TempDir(), "nested", "dir", "custom.db")

	tests := []struct {
		name       string
		configured string
		want       string
	}{
		{"default under home", "", filepath.Join(home, ".gitstory", "gitstory.db")},
		{"in memory untouched", MemoryPath, MemoryPath},
		{"custom file", custom, custom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ResolvePath(tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, path)
			if tt.want != MemoryPath {
				assert.DirExists(t, filepath.Dir(path))
			}
		})
	}
}

func TestRepositoriesTable_Indexes(t *testing.T) {
	database := migrated(t)

	rows, err := database.Query(`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'repositories'`)
	require.NoError(t, err)
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		indexes = append(indexes, name)
	}
	require.NoError(t, rows.Err())

	assert.Subset(t, indexes, []string{"idx_repositories_owner", "idx_repositories_synced_at"})
}

func TestRepositoriesTable_Uniqueness(t *testing.T) {
	database := migrated(t)
	insert := `INSERT INTO repositories (owner, name, full_name) VALUES (?, ?, ?)`

	_, err := database.Exec(insert, "octocat", "hello", "octocat/hello")
	require.NoError(t, err)

	_, err = database.Exec(insert, "other", "repo", "octocat/hello")
	assert.Error(t, err, "full_name is unique")

	_, err = database.Exec(insert, "octocat", "hello", "elsewhere/hello")
	assert.Error(t, err, "owner and name are unique together")
}

func TestRepositoriesTable_IgnoresCase(t *testing.T) {
	database := migrated(t)
	insert := `INSERT INTO repositories (owner, name, full_name) VALUES (?, ?, ?)`

	_, err := database.Exec(insert, "octocat", "hello", "octocat/hello")
	require.NoError(t, err)

	_, err = database.Exec(insert, "Octocat", "Hello", "Octocat/Hello")
	assert.Error(t, err, "logins and repository names differ only in case")

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM repositories WHERE owner = ?`, "OCTOCAT").Scan(&n))
	assert.Equal(t, 1, n)
}
