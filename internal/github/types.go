// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package github

import (
	"encoding/json"
	"time"
)

// Repository is one repository as listed by `gh repo list --json`.
// Fields tagged "-" come from nested objects and are filled by UnmarshalJSON.
type Repository struct {
	Owner           string    `json:"-"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PushedAt        time.Time `json:"pushedAt"`
	CreatedAt       time.Time `json:"createdAt"`
	StargazerCount  int       `json:"stargazerCount"`
	ForkCount       int       `json:"forkCount"`
	WatcherCount    int       `json:"-"`
	OpenIssueCount  int       `json:"-"`
	DiskUsage       int       `json:"diskUsage"`
	Topics          []string  `json:"-"`
	IsArchived      bool      `json:"isArchived"`
	IsFork          bool      `json:"isFork"`
	IsPrivate       bool      `json:"isPrivate"`
	PrimaryLanguage string    `json:"-"`
}

// Community holds the social counters of a GitHub account as returned by
// `gh api users/<login>`.
type Community struct {
	Login       string `json:"login"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

type named struct {
	Name string `json:"name"`
}

type connection struct {
	TotalCount int `json:"totalCount"`
}

// UnmarshalJSON decodes gh's GraphQL-shaped output, flattening the owner,
// primaryLanguage, watchers, issues and repositoryTopics objects. Any
// previous contents of r are discarded.
func (r *Repository) UnmarshalJSON(data []byte) error {
	type flat Repository
	*r = Repository{}

	nested := struct {
		*flat
		Owner *struct {
			Login string `json:"login"`
		} `json:"owner"`
		PrimaryLanguage *named      `json:"primaryLanguage"`
		Watchers        *connection `json:"watchers"`
		Issues          *connection `json:"issues"`
		Topics          []named     `json:"repositoryTopics"`
	}{flat: (*flat)(r)}

	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}

	if nested.Owner != nil {
		r.Owner = nested.Owner.Login
	}
	if nested.PrimaryLanguage != nil {
		r.PrimaryLanguage = nested.PrimaryLanguage.Name
	}
	if nested.Watchers != nil {
		r.WatcherCount = nested.Watchers.TotalCount
	}
	if nested.Issues != nil {
		r.OpenIssueCount = nested.Issues.TotalCount
	}
	for _, topic := range nested.Topics {
		if topic.Name != "" {
			r.Topics = append(r.Topics, topic.Name)
		}
	}
	return nil
}

// FullName returns "owner/name".
func (r *Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// DaysSincePush returns the whole days elapsed between PushedAt and now.
// A zero PushedAt yields 0.
func (r *Repository) DaysSincePush(now time.Time) int {
	if r.PushedAt.IsZero() {
		return 0
	}
	return int(now.Sub(r.PushedAt).Hours() / 24)
}
