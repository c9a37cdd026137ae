// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package export writes stories and score tables as JSON files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/llbbl/gitstory/internal/scoring"
	"github.com/llbbl/gitstory/internal/story"
)

// StoryExport is the file layout for an exported story.
type StoryExport struct {
	ExportedAt time.Time   `json:"exported_at"`
	Story      story.Story `json:"story"`
}

// ScoresExport is the file layout for an exported score table.
type ScoresExport struct {
	ExportedAt   time.Time       `json:"exported_at"`
	Owner        string          `json:"owner"`
	Repositories []ExportedScore `json:"repositories"`
}

// ExportedScore is a single ranked repository in a score export.
type ExportedScore struct {
	Rank      int               `json:"rank"`
	FullName  string            `json:"full_name"`
	Language  string            `json:"language"`
	Stars     int               `json:"stars"`
	Forks     int               `json:"forks"`
	LastPush  time.Time         `json:"last_push"`
	IsFork    bool              `json:"is_fork"`
	IsPrivate bool              `json:"is_private"`
	Score     scoring.Breakdown `json:"score"`
}

// Story writes a story as indented JSON. When path is empty a timestamped
// file is created in the working directory.
// Returns the filename on success or an empty string with an error on failure.
func Story(s story.Story, path string) (string, error) {
	data := StoryExport{
		ExportedAt: time.Now(),
		Story:      s,
	}
	if path == "" {
		path = timestampedName("gitstory-"+s.Login, data.ExportedAt)
	}
	return writeJSON(path, data)
}

// NewScoresExport converts ranked repositories into the score export layout.
func NewScoresExport(owner string, ranked []scoring.ScoredRepository) ScoresExport {
	repos := make([]ExportedScore, 0, len(ranked))
	for i, sr := range ranked {
		repos = append(repos, ExportedScore{
			Rank:      i + 1,
			FullName:  sr.Repository.FullName(),
			Language:  sr.Repository.PrimaryLanguage,
			Stars:     sr.Repository.StargazerCount,
			Forks:     sr.Repository.ForkCount,
			LastPush:  sr.Repository.PushedAt,
			IsFork:    sr.Repository.IsFork,
			IsPrivate: sr.Repository.IsPrivate,
			Score:     sr.Breakdown,
		})
	}

	return ScoresExport{
		ExportedAt:   time.Now(),
		Owner:        owner,
		Repositories: repos,
	}
}

// Scores writes ranked repositories as indented JSON. When path is empty a
// timestamped file is created in the working directory.
func Scores(owner string, ranked []scoring.ScoredRepository, path string) (string, error) {
	data := NewScoresExport(owner, ranked)
	if path == "" {
		path = timestampedName("gitstory-scores-"+owner, data.ExportedAt)
	}
	return writeJSON(path, data)
}

func timestampedName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s.json", prefix, t.Format("2006-01-02-150405"))
}

func writeJSON(path string, v any) (string, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}
