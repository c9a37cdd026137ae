// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package testutil provides repository builders and a scripted gh executor
// shared by gitstory tests.
package testutil

import (
	"time"

	"github.com/llbbl/gitstory/internal/github"
)

// ReferenceNow is the fixed "now" used by test repositories.
var ReferenceNow = time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC)

// PeriodStart is the start of the recent window matching ReferenceNow.
var PeriodStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// RepoOption customizes a repository built by NewTestRepo.
type RepoOption func(*github.Repository)

// NewTestRepo returns an owned, described Go repository pushed 30 days
// before ReferenceNow and created a year earlier, with opts applied in order.
func NewTestRepo(opts ...RepoOption) github.Repository {
	repo := github.Repository{
		Owner:           "testowner",
		Name:            "testrepo",
		Description:     "A test repository",
		PrimaryLanguage: "Go",
		StargazerCount:  5,
		ForkCount:       2,
		WatcherCount:    1,
		DiskUsage:       100,
		PushedAt:        ReferenceNow.AddDate(0, 0, -30),
		CreatedAt:       ReferenceNow.AddDate(-1, 0, 0),
	}
	for _, opt := range opts {
		opt(&repo)
	}
	return repo
}

// Identity and text.

func WithOwner(owner string) RepoOption { return func(r *github.Repository) { r.Owner = owner } }
func WithName(name string) RepoOption   { return func(r *github.Repository) { r.Name = name } }
func WithDescription(desc string) RepoOption {
	return func(r *github.Repository) { r.Description = desc }
}
func WithLanguage(lang string) RepoOption { return func(r *github.Repository) { r.PrimaryLanguage = lang } }

// WithTopics replaces the topic list; no arguments clears it.
func WithTopics(topics ...string) RepoOption {
	return func(r *github.Repository) { r.Topics = topics }
}

// Counters.

func WithStars(n int) RepoOption      { return func(r *github.Repository) { r.StargazerCount = n } }
func WithForks(n int) RepoOption      { return func(r *github.Repository) { r.ForkCount = n } }
func WithWatchers(n int) RepoOption   { return func(r *github.Repository) { r.WatcherCount = n } }
func WithOpenIssues(n int) RepoOption { return func(r *github.Repository) { r.OpenIssueCount = n } }

// WithDiskUsage sets the size in kilobytes as reported by gh.
func WithDiskUsage(kb int) RepoOption { return func(r *github.Repository) { r.DiskUsage = kb } }

// Flags.

func WithFork(v bool) RepoOption     { return func(r *github.Repository) { r.IsFork = v } }
func WithArchived(v bool) RepoOption { return func(r *github.Repository) { r.IsArchived = v } }
func WithPrivate(v bool) RepoOption  { return func(r *github.Repository) { r.IsPrivate = v } }

// Dates.

func WithCreatedAt(t time.Time) RepoOption { return func(r *github.Repository) { r.CreatedAt = t } }
func WithPushedAt(t time.Time) RepoOption  { return func(r *github.Repository) { r.PushedAt = t } }

// WithDaysInactive sets PushedAt to days before ReferenceNow.
func WithDaysInactive(days int) RepoOption {
	return func(r *github.Repository) { r.PushedAt = ReferenceNow.AddDate(0, 0, -days) }
}
