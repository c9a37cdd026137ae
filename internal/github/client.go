// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package github provides a wrapper around the gh CLI for interacting with GitHub.
package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Custom error types for common gh CLI failures.
var (
	// ErrNotAuthenticated indicates the user is not authenticated with gh CLI.
	ErrNotAuthenticated = errors.New("not authenticated with gh CLI")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimit indicates the GitHub API rate limit has been exceeded.
	ErrRateLimit = errors.New("GitHub API rate limit exceeded")
)

// RepoListFields is the --json field list requested from gh repo list.
const RepoListFields = "name,description,pushedAt,createdAt,stargazerCount,forkCount,watchers,issues,diskUsage,repositoryTopics,isArchived,isFork,isPrivate,primaryLanguage,owner"

// RepoListLimit caps how many repositories a single listing returns.
const RepoListLimit = "1000"

// failureMarkers maps lowercase substrings of gh output to sentinel errors.
// The first matching entry wins.
var failureMarkers = []struct {
	sentinel error
	markers  []string
}{
	{ErrNotAuthenticated, []string{"not logged in", "authentication", "gh auth login"}},
	{ErrRateLimit, []string{"rate limit"}},
	{ErrNotFound, []string{"404", "not found", "could not resolve"}},
}

// Client wraps the gh CLI to provide GitHub API access.
type Client struct {
	executor CommandExecutor
}

// NewClient creates a new GitHub client with the provided executor.
func NewClient(executor CommandExecutor) *Client {
	return &Client{executor: executor}
}

// NewDefaultClient creates a new GitHub client using the real gh CLI executor.
func NewDefaultClient() *Client {
	return &Client{executor: &RealExecutor{}}
}

// FetchRepositories fetches the repositories listed under owner, including
// the counters and topics used for scoring.
func (c *Client) FetchRepositories(owner string) ([]Repository, error) {
	if owner == "" {
		return nil, fmt.Errorf("owner cannot be empty")
	}

	output, err := c.gh("fetching repositories for "+owner,
		"repo", "list", owner, "--json", RepoListFields, "--limit", RepoListLimit)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" || trimmed == "[]" {
		return []Repository{}, nil
	}

	var repos []Repository
	if err := json.Unmarshal(output, &repos); err != nil {
		return nil, fmt.Errorf("parsing repository list: %w", err)
	}

	return repos, nil
}

// GetAuthenticatedUser returns the login of the currently authenticated user.
func (c *Client) GetAuthenticatedUser() (string, error) {
	output, err := c.gh("getting authenticated user", "api", "user", "--jq", ".login")
	if err != nil {
		return "", err
	}

	login := strings.TrimSpace(string(output))
	if login == "" {
		return "", ErrNotAuthenticated
	}

	return login, nil
}

// FetchCommunity returns the follower and repository counters for login.
func (c *Client) FetchCommunity(login string) (Community, error) {
	if login == "" {
		return Community{}, fmt.Errorf("login cannot be empty")
	}

	output, err := c.gh("fetching profile for "+login, "api", "users/"+login)
	if err != nil {
		return Community{}, err
	}

	var community Community
	if err := json.Unmarshal(output, &community); err != nil {
		return Community{}, fmt.Errorf("parsing profile for %s: %w", login, err)
	}
	if community.Login == "" {
		community.Login = login
	}

	return community, nil
}

// gh runs a gh subcommand and classifies failures.
func (c *Client) gh(action string, args ...string) ([]byte, error) {
	output, err := c.executor.Execute("gh", args...)
	if err != nil {
		return nil, classifyError(action, err, output)
	}
	return output, nil
}

// classifyError wraps a failed gh call with context, mapping well-known
// failures onto the package sentinel errors.
func classifyError(action string, err error, output []byte) error {
	combined := strings.ToLower(string(output) + " " + err.Error())

	for _, f := range failureMarkers {
		for _, marker := range f.markers {
			if strings.Contains(combined, marker) {
				return fmt.Errorf("%s: %w", action, f.sentinel)
			}
		}
	}

	if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
		return fmt.Errorf("%s: %w (output: %s)", action, err, trimmed)
	}
	return fmt.Errorf("%s: %w", action, err)
}
