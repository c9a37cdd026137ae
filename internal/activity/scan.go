// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/sync/errgroup"

	"github.com/llbbl/gitstory/internal/logging"
)

// ScanOptions selects the commits Scan counts.
type ScanOptions struct {
	// Login is copied into the resulting Activity.
	Login string
	// Authors are author emails to count, compared case-insensitively.
	// Empty counts every author.
	Authors []string
	// Since and Until bound the author date. Zero values leave that side open.
	Since time.Time
	Until time.Time
}

// today is the day the current streak ends on: the last instant before
// Until, or now when Until is open.
func (o ScanOptions) today() time.Time {
	if o.Until.IsZero() {
		return time.Now()
	}
	return o.Until.Add(-time.Nanosecond)
}

func (o ScanOptions) counts(c *object.Commit) bool {
	when := c.Author.When
	if !o.Since.IsZero() && when.Before(o.Since) {
		return false
	}
	if !o.Until.IsZero() && !when.Before(o.Until) {
		return false
	}
	if len(o.Authors) == 0 {
		return true
	}
	for _, email := range o.Authors {
		if strings.EqualFold(email, c.Author.Email) {
			return true
		}
	}
	return false
}

// stamp is one counted commit.
type stamp struct {
	hash plumbing.Hash
	when time.Time
}

// Scan walks the history reachable from HEAD in each local clone and builds
// an Activity from the matching commits. Hours and weekdays use the author's
// own time zone, as do the calendar days behind the streaks. A commit
// reachable from several clones is counted once.
// Only commits are known locally, so the PR, issue and review counts stay 0.
func Scan(ctx context.Context, paths []string, opts ScanOptions) (Activity, error) {
	if len(paths) == 0 {
		return Activity{}, errors.New("no repositories to scan")
	}

	stamps := make([][]stamp, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			found, err := scanRepository(gctx, path, opts)
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			stamps[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Activity{}, err
	}

	a := Activity{Login: opts.Login, HourCounts: make(map[int]int)}
	seen := make(map[plumbing.Hash]bool)
	var active []time.Time
	for _, repoStamps := range stamps {
		for _, s := range repoStamps {
			if seen[s.hash] {
				continue
			}
			seen[s.hash] = true
			a.HourCounts[s.when.Hour()]++
			a.WeekdayCounts[s.when.Weekday()]++
			a.Breakdown.Commits++
			active = append(active, s.when)
		}
	}
	a.TotalCommits = a.Breakdown.Commits
	a.LongestStreak, a.CurrentStreak = Streaks(active, opts.today())
	return a, nil
}

// scanRepository opens one clone and collects its matching commits. A clone
// without commits yields nothing.
func scanRepository(ctx context.Context, path string, opts ScanOptions) ([]stamp, error) {
	log := logging.WithComponent("activity").With("repo", path)

	// go-git repositories are not safe for concurrent use, so each scan
	// opens its own handle.
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		log.Debug("repository has no commits")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	commits, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	defer commits.Close()

	var found []stamp
	walked := 0
	err = commits.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		walked++
		if opts.counts(c) {
			found = append(found, stamp{hash: c.Hash, when: c.Author.When})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commits: %w", err)
	}

	log.Debug("scanned repository", "commits", walked, "matched", len(found))
	return found, nil
}

// Write encodes a as indented JSON in the format Parse reads.
func (a Activity) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encoding activity: %w", err)
	}
	return nil
}

// Save writes a to path.
func (a Activity) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating activity file: %w", err)
	}
	if err := a.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
