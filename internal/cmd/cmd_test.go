// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llbbl/gitstory/internal/db"
	"github.com/llbbl/gitstory/internal/export"
	"github.com/llbbl/gitstory/internal/github"
	"github.com/llbbl/gitstory/internal/scoring"
	"github.com/llbbl/gitstory/internal/store"
	"github.com/llbbl/gitstory/internal/story"
	"github.com/llbbl/gitstory/internal/testutil"
)

const repoListJSON = `[
	{"owner":{"login":"octocat"},"name":"hello-world","description":"My first repository","stargazerCount":80,"forkCount":9,"primaryLanguage":{"name":"Go"},"pushedAt":"2099-01-01T00:00:00Z","createdAt":"2020-01-01T00:00:00Z"},
	{"owner":{"login":"octocat"},"name":"spoon-knife","stargazerCount":3,"primaryLanguage":{"name":"HTML"},"pushedAt":"2020-01-01T00:00:00Z","createdAt":"2019-01-01T00:00:00Z"}
]`

const profileJSON = `{"login":"octocat","followers":10,"following":2,"public_repos":8}`

// resetFlags restores every flag variable to its default.
func resetFlags() {
	owner = ""
	activityPath = ""
	exportPath = ""
	jsonOutput = false
	offline = false
	watch = false
	forceReset = false
	scanAuthors = nil
	scanSince = ""
	scanOutput = ""
	cfg = nil
}

// testEnv points the database at a temp file and quiets logging.
func testEnv(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "gitstory.db")
	t.Setenv("GITSTORY_DB_PATH", dbPath)
	t.Setenv("GITSTORY_LOG_LEVEL", "error")
	t.Setenv("GITSTORY_PERIOD_START", "")
	t.Setenv("GITSTORY_SYNC_INTERVAL", "")
	return dbPath
}

// ghMock returns a client whose executor answers like a logged-in gh CLI.
func ghMock(t *testing.T) *testutil.MockExecutor {
	t.Helper()
	mock := testutil.NewMockExecutor().
		On("gh api user ", "octocat\n", nil).
		On("gh api users/octocat", profileJSON, nil).
		On("gh repo list octocat", repoListJSON, nil)

	previous := newClient
	newClient = func() *github.Client { return github.NewClient(mock) }
	t.Cleanup(func() { newClient = previous })
	return mock
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// seedStore writes repositories and community stats into the database file.
func seedStore(t *testing.T, dbPath string, repos []github.Repository, community *github.Community) {
	t.Helper()
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer db.Close(database)
	require.NoError(t, db.RunMigrations(database))

	st := store.New(database)
	require.NoError(t, st.UpsertRepositories("octocat", repos))
	if community != nil {
		require.NoError(t, st.SaveCommunity(*community))
	}
}

func writeActivity(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersionVariable(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should have a default value")
}

func TestVersionCommand(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gitstory version dev\n", out)
}

func TestInvalidConfigFailsBeforeRunning(t *testing.T) {
	testEnv(t)
	t.Setenv("GITSTORY_LOG_LEVEL", "loud")

	_, err := execute(t, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITSTORY_LOG_LEVEL")
}

func TestDBPathCommand(t *testing.T) {
	dbPath := testEnv(t)

	out, err := execute(t, "db", "path")
	require.NoError(t, err)
	assert.Equal(t, dbPath+"\n", out)
}

func TestDBMigrateAndStatus(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "db", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Database does not exist")

	out, err = execute(t, "db", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "version 0 -> 2")

	out, err = execute(t, "db", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Migration version: 2")
	assert.Contains(t, out, "Repository count: 0")
	assert.Contains(t, out, "Last sync: never")
}

func TestDBResetForce(t *testing.T) {
	dbPath := testEnv(t)
	seedStore(t, dbPath, []github.Repository{testutil.NewTestRepo(testutil.WithOwner("octocat"))}, nil)

	out, err := execute(t, "db", "reset", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted: "+dbPath)
	assert.Contains(t, out, "Created fresh database at version 2")

	out, err = execute(t, "db", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Repository count: 0")
}

func TestSyncCommand(t *testing.T) {
	dbPath := testEnv(t)
	mock := ghMock(t)

	out, err := execute(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetching repositories for octocat")
	assert.Contains(t, out, "Sync complete: 2 repositories, 10 followers, 0 removed")
	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, 1, mock.CallsTo("gh repo list octocat"))

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer db.Close(database)
	st := store.New(database)

	repos, err := st.GetRepositories("octocat")
	require.NoError(t, err)
	assert.Len(t, repos, 2)

	community, err := st.GetCommunity("octocat")
	require.NoError(t, err)
	assert.Equal(t, 8, community.PublicRepos)
}

func TestSyncCommand_NotAuthenticated(t *testing.T) {
	testEnv(t)
	mock := ghMock(t)
	mock.On("gh api user ", "", nil)

	_, err := execute(t, "sync")
	require.ErrorIs(t, err, github.ErrNotAuthenticated)
	assert.Contains(t, err.Error(), "gh auth login")
}

func TestScoreCommand_Offline(t *testing.T) {
	dbPath := testEnv(t)
	seedStore(t, dbPath, []github.Repository{
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("quiet"), testutil.WithStars(0)),
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("loud"), testutil.WithStars(400)),
	}, nil)

	out, err := execute(t, "score", "--offline", "--owner", "octocat")
	require.NoError(t, err)
	assert.Contains(t, out, "Repository scores: octocat")
	assert.Less(t, strings.Index(out, "octocat/loud"), strings.Index(out, "octocat/quiet"))
}

func TestScoreCommand_OfflineJSON(t *testing.T) {
	dbPath := testEnv(t)
	seedStore(t, dbPath, []github.Repository{
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("only")),
	}, nil)

	out, err := execute(t, "score", "--offline", "--owner", "octocat", "--json")
	require.NoError(t, err)

	var data export.ScoresExport
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	require.Len(t, data.Repositories, 1)
	assert.Equal(t, "octocat/only", data.Repositories[0].FullName)
	assert.InDelta(t, data.Repositories[0].Score.Sum(), data.Repositories[0].Score.Total, 1e-9)
}

func TestScoreCommand_NamedRepos(t *testing.T) {
	dbPath := testEnv(t)
	seedStore(t, dbPath, []github.Repository{
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("quiet")),
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("loud"), testutil.WithStars(400)),
	}, nil)

	out, err := execute(t, "score", "--offline", "--owner", "octocat", "--json", "Quiet")
	require.NoError(t, err)

	var data export.ScoresExport
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	require.Len(t, data.Repositories, 1)
	assert.Equal(t, "octocat/quiet", data.Repositories[0].FullName)

	_, err = execute(t, "score", "--offline", "--owner", "octocat", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "octocat/missing is not cached")
}

func TestScoreCommand_OfflineRequiresOwner(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "score", "--offline")
	assert.ErrorIs(t, err, errOwnerRequired)
}

func TestStoryCommand_OfflineJSON(t *testing.T) {
	dbPath := testEnv(t)
	seedStore(t, dbPath, []github.Repository{
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("a"), testutil.WithStars(700)),
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("b"), testutil.WithStars(400)),
	}, &github.Community{Login: "octocat", Followers: 3})
	activityFile := writeActivity(t, `{
		"login": "octocat",
		"breakdown": {"commits": 100, "prs": 2, "issues": 1, "reviews": 0},
		"hour_counts": {"6": 40, "15": 10},
		"weekday_counts": [0, 20, 20, 20, 20, 20, 0]
	}`)

	out, err := execute(t, "story", "--offline", "--json", "--activity", activityFile)
	require.NoError(t, err)

	var s story.Story
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "octocat", s.Login)
	assert.Len(t, s.TopRepos, 2)
	assert.Equal(t, scoring.Profile{PeakHour: 6, TimeOfDay: scoring.Morning}, s.Productivity)
	assert.Equal(t, scoring.DawnCoder, s.Archetype.Name)
	assert.Equal(t, 1100, s.Community.TotalStars)
	assert.Equal(t, 3, s.Community.Followers)
	assert.Equal(t, 100, s.TotalCommits)
}

func TestStoryCommand_RootRendersStory(t *testing.T) {
	dbPath := testEnv(t)
	seedStore(t, dbPath, []github.Repository{
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("solo")),
	}, nil)

	out, err := execute(t, "--offline", "--owner", "octocat")
	require.NoError(t, err)
	assert.Contains(t, out, "gitstory: octocat")
	assert.Contains(t, out, "octocat/solo")
	assert.Contains(t, out, "The Curious Explorer")
}

func TestStoryCommand_ExportPath(t *testing.T) {
	dbPath := testEnv(t)
	seedStore(t, dbPath, []github.Repository{
		testutil.NewTestRepo(testutil.WithOwner("octocat")),
	}, nil)
	target := filepath.Join(t.TempDir(), "story.json")

	_, err := execute(t, "story", "--offline", "--owner", "octocat", "--export="+target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	var data export.StoryExport
	require.NoError(t, json.Unmarshal(content, &data))
	assert.Equal(t, "octocat", data.Story.Login)
}

func TestStoryCommand_SyncsEmptyCache(t *testing.T) {
	testEnv(t)
	mock := ghMock(t)

	out, err := execute(t, "story", "--json")
	require.NoError(t, err)
	assert.Equal(t, 3, mock.CallCount())

	var s story.Story
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "octocat", s.Login)
	require.NotEmpty(t, s.TopRepos)
	assert.Equal(t, "octocat/hello-world", s.TopRepos[0].FullName)
	assert.Equal(t, 10, s.Community.Followers)
}

func TestStoryCommand_OwnerCaseDoesNotMatter(t *testing.T) {
	testEnv(t)
	mock := ghMock(t)
	mock.On("gh api users/Octocat", profileJSON, nil).
		On("gh repo list Octocat", repoListJSON, nil)

	for range 2 {
		out, err := execute(t, "story", "--owner", "Octocat", "--json")
		require.NoError(t, err)

		var s story.Story
		require.NoError(t, json.Unmarshal([]byte(out), &s))
		assert.Len(t, s.TopRepos, 2)
		assert.Equal(t, 2, s.Summary.Repos)
		assert.Equal(t, 10, s.Community.Followers)
	}
	assert.Equal(t, 1, mock.CallsTo("gh repo list Octocat"), "second run reads the fresh cache")
}

func TestStoryCommand_FallsBackToCacheWhenSyncFails(t *testing.T) {
	dbPath := testEnv(t)
	t.Setenv("GITSTORY_SYNC_INTERVAL", "1ns")
	seedStore(t, dbPath, []github.Repository{
		testutil.NewTestRepo(testutil.WithOwner("octocat"), testutil.WithName("cached")),
	}, nil)
	mock := ghMock(t)
	mock.On("gh", "API rate limit exceeded", errors.New("exit status 1"))

	out, err := execute(t, "story", "--owner", "octocat", "--json")
	require.NoError(t, err)

	var s story.Story
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	require.Len(t, s.TopRepos, 1)
	assert.Equal(t, "octocat/cached", s.TopRepos[0].FullName)
}

func TestStoryCommand_SyncFailureWithoutCache(t *testing.T) {
	testEnv(t)
	mock := ghMock(t)
	mock.On("gh", "API rate limit exceeded", errors.New("exit status 1"))

	_, err := execute(t, "story", "--owner", "octocat")
	assert.ErrorIs(t, err, github.ErrRateLimit)
}

func TestStoryCommand_BadActivityFile(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "story", "--offline", "--owner", "octocat", "--activity", writeActivity(t, `{"hour_counts": {"30": 1}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading activity")
}

func TestExportTarget(t *testing.T) {
	t.Cleanup(resetFlags)

	exportPath = exportTimestamped
	assert.Equal(t, "", exportTarget())

	exportPath = "out.json"
	assert.Equal(t, "out.json", exportTarget())
}
