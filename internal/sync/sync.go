// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package sync provides repository and community synchronization.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llbbl/gitstory/internal/github"
	"github.com/llbbl/gitstory/internal/logging"
	"github.com/llbbl/gitstory/internal/store"
)

// Fetcher is the subset of the GitHub client the syncer depends on.
type Fetcher interface {
	FetchRepositories(owner string) ([]github.Repository, error)
	FetchCommunity(login string) (github.Community, error)
}

// SyncMsgType represents the type of sync message.
type SyncMsgType int

const (
	// SyncStarted indicates a sync operation has begun.
	SyncStarted SyncMsgType = iota
	// SyncCompleted indicates a sync operation completed successfully.
	SyncCompleted
	// SyncError indicates a sync operation encountered an error.
	SyncError
)

// String returns a short label for log and terminal output.
func (t SyncMsgType) String() string {
	switch t {
	case SyncStarted:
		return "started"
	case SyncCompleted:
		return "completed"
	case SyncError:
		return "error"
	default:
		return "unknown"
	}
}

// SyncMsg represents a message sent from a running syncer.
type SyncMsg struct {
	Type   SyncMsgType
	Result SyncResult // only populated for SyncCompleted and SyncError
}

// SyncResult represents the result of a single sync operation.
type SyncResult struct {
	Repos     []github.Repository
	Community github.Community
	Deleted   int64
	Error     error
}

// DefaultInterval is the watch period used when none is configured.
const DefaultInterval = 5 * time.Minute

// Syncer fetches repositories and community stats for one owner and caches them.
type Syncer struct {
	store    *store.Store
	client   Fetcher
	owner    string
	interval time.Duration
	log      *slog.Logger
}

// New creates a new Syncer with the given configuration.
func New(store *store.Store, client Fetcher, owner string, interval time.Duration) *Syncer {
	return &Syncer{
		store:    store,
		client:   client,
		owner:    owner,
		interval: interval,
		log:      logging.WithComponent("sync").With("owner", owner),
	}
}

// Start begins periodic sync. The returned channel is closed once ctx is done.
func (s *Syncer) Start(ctx context.Context) <-chan SyncMsg {
	msgCh := make(chan SyncMsg, 10) // buffered to prevent blocking
	go s.run(ctx, msgCh)
	return msgCh
}

// SyncOnce performs a single sync and returns the result.
func (s *Syncer) SyncOnce(ctx context.Context) SyncResult {
	return s.doSync(ctx)
}

// SyncIfStale syncs only when the cache is older than the sync interval.
// The boolean reports whether a sync was attempted.
func (s *Syncer) SyncIfStale(ctx context.Context) (SyncResult, bool) {
	if !s.isStale() {
		s.log.Debug("cache is fresh, skipping sync")
		return SyncResult{}, false
	}
	return s.doSync(ctx), true
}

// run is the main periodic sync loop.
func (s *Syncer) run(ctx context.Context, msgCh chan<- SyncMsg) {
	defer close(msgCh)

	if s.isStale() {
		s.performSync(ctx, msgCh)
	}

	interval := s.interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.log.Debug("sync tick", "interval", interval)
			s.performSync(ctx, msgCh)
		}
	}
}

// isStale checks if cached data is old enough to warrant an immediate sync.
func (s *Syncer) isStale() bool {
	lastSync, err := s.store.GetLastSyncTime(s.owner)
	if err != nil {
		// If we can't determine last sync time, sync anyway
		s.log.Warn("failed to get last sync time", "error", err)
		return true
	}

	if lastSync.IsZero() {
		return true
	}

	return time.Since(lastSync) >= s.interval
}

// performSync executes a sync and sends appropriate messages.
func (s *Syncer) performSync(ctx context.Context, msgCh chan<- SyncMsg) {
	select {
	case msgCh <- SyncMsg{Type: SyncStarted}:
	case <-ctx.Done():
		return
	}

	result := s.doSync(ctx)

	msg := SyncMsg{Type: SyncCompleted, Result: result}
	if result.Error != nil {
		msg.Type = SyncError
		s.log.Error("sync failed", "error", result.Error)
	} else {
		s.log.Info("sync completed",
			"repos", len(result.Repos),
			"deleted", result.Deleted,
		)
	}

	select {
	case msgCh <- msg:
	case <-ctx.Done():
	}
}

// doSync fetches repositories and community stats concurrently, then stores
// both and prunes repositories that no longer exist upstream.
func (s *Syncer) doSync(ctx context.Context) SyncResult {
	s.log.Debug("starting sync")
	started := time.Now()

	var (
		repos     []github.Repository
		community github.Community
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		repos, err = s.client.FetchRepositories(s.owner)
		if err != nil {
			return err
		}
		return gctx.Err()
	})
	g.Go(func() error {
		var err error
		community, err = s.client.FetchCommunity(s.owner)
		if err != nil {
			return err
		}
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return SyncResult{Error: err}
	}

	if err := s.store.UpsertRepositories(s.owner, repos); err != nil {
		return SyncResult{Error: err}
	}
	if err := s.store.SaveCommunity(community); err != nil {
		return SyncResult{Error: err}
	}

	// Stale rows are only pruned once upstream returned something, so an
	// empty listing never wipes the cache.
	var deleted int64
	if len(repos) > 0 {
		var err error
		deleted, err = s.store.DeleteStaleRepositories(s.owner, started)
		if err != nil {
			return SyncResult{Error: fmt.Errorf("pruning repositories: %w", err)}
		}
	}

	return SyncResult{
		Repos:     repos,
		Community: community,
		Deleted:   deleted,
	}
}
