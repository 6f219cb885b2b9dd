package task

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/felixgeelhaar/checklist/adapter/cli"
	internalApp "github.com/felixgeelhaar/checklist/internal/app"
	"github.com/felixgeelhaar/checklist/pkg/config"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testUserID is a fixed user ID for tests
var testUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// setupLocalModeTestApp creates a test application with SQLite for integration tests.
func setupLocalModeTestApp(t *testing.T) *cli.App {
	t.Helper()
	color.NoColor = true

	cfg := config.Defaults()
	cfg.AppEnv = "test"
	cfg.SQLitePath = filepath.Join(t.TempDir(), "test.db")
	cfg.UserID = testUserID.String()

	// Create logger (silent in tests)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)

	cliApp := cli.NewApp(container.Engine)
	cliApp.SetCurrentUserID(container.OwnerID)
	cli.SetApp(cliApp)

	t.Cleanup(func() {
		cli.SetApp(nil)
		container.Close()
	})
	return cliApp
}

// run executes the task command group with args and returns its output.
// Flag values are reset first because cobra keeps them between runs.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, c := range Cmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(io.Discard)
	Cmd.SetArgs(args)
	Cmd.SilenceUsage = true
	Cmd.SilenceErrors = true

	err := Cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func addTask(t *testing.T, app *cli.App, title string) uuid.UUID {
	t.Helper()
	dto, err := app.Engine.Create(context.Background(), app.CurrentUserID, title, "")
	require.NoError(t, err)
	return dto.ID
}

func TestAddCmd_CreatesTask(t *testing.T) {
	app := setupLocalModeTestApp(t)

	out, err := run(t, "add", "  Test task from CLI  ", "--description", "Test task description")
	require.NoError(t, err)
	assert.Contains(t, out, "Task added:")
	assert.Contains(t, out, "title: Test task from CLI")

	list, err := app.Engine.List(context.Background(), app.CurrentUserID, "all")
	require.NoError(t, err)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "Test task from CLI", list.Tasks[0].Title)
	assert.Equal(t, "Test task description", list.Tasks[0].Description)
}

func TestAddCmd_RejectsBlankTitle(t *testing.T) {
	setupLocalModeTestApp(t)

	_, err := run(t, "add", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title cannot be empty")
}

func TestListCmd_EmptyStates(t *testing.T) {
	app := setupLocalModeTestApp(t)

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks yet")

	addTask(t, app, "Still pending")

	out, err = run(t, "list", "--filter", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "No completed tasks.")

	_, err = run(t, "list", "--filter", "someday")
	assert.Error(t, err)
}

func TestListCmd_NewestFirstWithFilter(t *testing.T) {
	app := setupLocalModeTestApp(t)
	ctx := context.Background()

	addTask(t, app, "Write report")
	bills := addTask(t, app, "Pay bills")
	_, err := app.Engine.Toggle(ctx, app.CurrentUserID, bills)
	require.NoError(t, err)

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] Pay bills")
	assert.Contains(t, out, "[ ] Write report")
	assert.Less(t, strings.Index(out, "Pay bills"), strings.Index(out, "Write report"))

	out, err = run(t, "ls", "-f", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Pay bills")
}

func TestToggleCmd_ByShortID(t *testing.T) {
	app := setupLocalModeTestApp(t)
	id := addTask(t, app, "Flip me")

	out, err := run(t, "toggle", id.String()[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "[x] Flip me (completed)")

	out, err = run(t, "done", id.String())
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] Flip me (pending)")
}

func TestShowCmd(t *testing.T) {
	app := setupLocalModeTestApp(t)
	id := addTask(t, app, "Look at me")

	out, err := run(t, "show", id.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Task: "+id.String())
	assert.Contains(t, out, "Title:       Look at me")
	assert.Contains(t, out, "Status:      pending")

	_, err = run(t, "show", uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task not found")

	_, err = run(t, "show", "abc")
	assert.Error(t, err)
}

func TestUpdateCmd_KeepsUnflaggedFields(t *testing.T) {
	app := setupLocalModeTestApp(t)
	ctx := context.Background()
	created, err := app.Engine.Create(ctx, app.CurrentUserID, "Write report", "quarterly")
	require.NoError(t, err)

	_, err = run(t, "update", created.ID.String(), "--title", "Write final report", "--completed")
	require.NoError(t, err)

	got, err := app.Engine.Get(ctx, app.CurrentUserID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write final report", got.Title)
	assert.Equal(t, "quarterly", got.Description)
	assert.True(t, got.Completed)

	_, err = run(t, "update", created.ID.String())
	assert.Error(t, err)

	_, err = run(t, "update", created.ID.String(), "--completed", "--pending")
	assert.Error(t, err)

	_, err = run(t, "update", created.ID.String(), "--title", " ")
	assert.Error(t, err)
}

func TestDeleteCmd_IsIdempotent(t *testing.T) {
	app := setupLocalModeTestApp(t)
	id := addTask(t, app, "Temporary")

	out, err := run(t, "delete", id.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Task deleted")

	out, err = run(t, "rm", id.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Task already deleted")
}

func TestDeleteCmd_PrefixOfDeletedTask(t *testing.T) {
	app := setupLocalModeTestApp(t)
	id := addTask(t, app, "Temporary")
	prefix := id.String()[:8]

	out, err := run(t, "delete", prefix)
	require.NoError(t, err)
	assert.Contains(t, out, "Task deleted")

	_, err = run(t, "delete", prefix)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "may already be deleted")
	assert.Contains(t, err.Error(), "full task ID")

	out, err = run(t, "delete", id.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Task already deleted")
}

func TestCommands_RequireApp(t *testing.T) {
	cli.SetApp(nil)

	for _, args := range [][]string{{"add", "x"}, {"list"}, {"toggle", uuid.NewString()}} {
		_, err := run(t, args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not initialized")
	}
}

