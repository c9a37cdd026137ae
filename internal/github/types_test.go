// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package github

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FullName(t *testing.T) {
	tests := []struct {
		owner, name, want string
	}{
		{"llbbl", "gitstory", "llbbl/gitstory"},
		{"", "gitstory", "/gitstory"},
		{"llbbl", "", "llbbl/"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			repo := Repository{Owner: tt.owner, Name: tt.name}
			assert.Equal(t, tt.want, repo.FullName())
		})
	}
}

func TestRepository_DaysSincePush(t *testing.T) {
	now := time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pushedAt time.Time
		want     int
	}{
		{"same instant", now, 0},
		{"twelve hours ago", now.Add(-12 * time.Hour), 0},
		{"yesterday", now.AddDate(0, 0, -1), 1},
		{"one week ago", now.AddDate(0, 0, -7), 7},
		{"one year ago", now.AddDate(-1, 0, 0), 365},
		{"zero time", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := Repository{PushedAt: tt.pushedAt}
			assert.Equal(t, tt.want, repo.DaysSincePush(now))
		})
	}
}

func TestRepository_UnmarshalJSON_NestedObjects(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Repository
	}{
		{
			name: "owner and language",
			json: `{"owner":{"login":"llbbl"},"name":"gitstory","primaryLanguage":{"name":"Go"},"stargazerCount":10}`,
			want: Repository{Owner: "llbbl", Name: "gitstory", PrimaryLanguage: "Go", StargazerCount: 10},
		},
		{
			name: "null language",
			json: `{"owner":{"login":"llbbl"},"name":"test","primaryLanguage":null}`,
			want: Repository{Owner: "llbbl", Name: "test"},
		},
		{
			name: "missing owner",
			json: `{"name":"test"}`,
			want: Repository{Name: "test"},
		},
		{
			name: "flags",
			json: `{"name":"flags","isArchived":true,"isFork":true,"isPrivate":true}`,
			want: Repository{Name: "flags", IsArchived: true, IsFork: true, IsPrivate: true},
		},
		{
			name: "counts and topics",
			json: `{"name":"r","diskUsage":77,"watchers":{"totalCount":9},"issues":{"totalCount":2},"repositoryTopics":[{"name":"go"},{"name":""},{"name":"cli"}]}`,
			want: Repository{Name: "r", DiskUsage: 77, WatcherCount: 9, OpenIssueCount: 2, Topics: []string{"go", "cli"}},
		},
		{
			name: "null connections",
			json: `{"name":"r","watchers":null,"issues":null,"repositoryTopics":null}`,
			want: Repository{Name: "r"},
		},
		{
			name: "empty object",
			json: `{}`,
			want: Repository{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var repo Repository
			require.NoError(t, json.Unmarshal([]byte(tt.json), &repo))
			assert.Equal(t, tt.want, repo)
		})
	}
}

func TestRepository_UnmarshalJSON_Invalid(t *testing.T) {
	var repo Repository
	assert.Error(t, json.Unmarshal([]byte(`{"owner":{"login":"llbbl"`), &repo))
}

func TestRepository_UnmarshalJSON_Times(t *testing.T) {
	var repo Repository
	err := json.Unmarshal([]byte(`{"name":"t","pushedAt":"2024-06-15T10:30:00Z","createdAt":"2023-01-01T00:00:00Z"}`), &repo)
	require.NoError(t, err)

	assert.True(t, repo.PushedAt.Equal(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)))
	assert.True(t, repo.CreatedAt.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRepository_UnmarshalJSON_ResetsTopicsOnReuse(t *testing.T) {
	var repo Repository
	require.NoError(t, json.Unmarshal([]byte(`{"repositoryTopics":[{"name":"old"}]}`), &repo))
	require.NoError(t, json.Unmarshal([]byte(`{"name":"fresh"}`), &repo))
	assert.Nil(t, repo.Topics)
}
