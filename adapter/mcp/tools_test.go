package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	internalApp "github.com/felixgeelhaar/checklist/internal/app"
	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/checklist/pkg/config"
	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *mcp.Server {
	return mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools: true,
		},
	})
}

func newTestApp(t *testing.T) *cli.App {
	t.Helper()

	cfg := config.Defaults()
	cfg.AppEnv = "test"
	cfg.SQLitePath = filepath.Join(t.TempDir(), "mcp.db")

	container, err := internalApp.NewContainer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(container.Engine)
	app.SetCurrentUserID(container.OwnerID)
	app.Health = container.Health
	return app
}

func TestRegisterCLITools_ListTools(t *testing.T) {
	srv := newTestServer()

	app := &cli.App{}
	require.NoError(t, RegisterCLITools(srv, ToolDependencies{App: app}))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[any]bool, len(tools))
	for _, tool := range tools {
		names[tool["name"]] = true
	}
	for _, name := range []string{"cli.health", "task.create", "task.list", "task.show", "task.toggle", "task.update", "task.delete"} {
		assert.True(t, names[name], "%s tool should be registered", name)
	}
}

func TestRegisterCLITools_RequiresApp(t *testing.T) {
	assert.Error(t, RegisterCLITools(nil, ToolDependencies{App: &cli.App{}}))
	assert.Error(t, RegisterCLITools(newTestServer(), ToolDependencies{}))
}

func TestTaskTools_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tools := &taskTools{app: newTestApp(t)}

	created, err := tools.create(ctx, taskCreateInput{Title: "  Buy milk  ", Description: "2 liters"})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)

	toggled, err := tools.toggle(ctx, taskIDInput{TaskID: created.ID.String()})
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	pending, err := tools.list(ctx, taskListInput{Filter: "pending"})
	require.NoError(t, err)
	assert.Empty(t, pending.Tasks)
	assert.Equal(t, 1, pending.Total)

	completed := false
	updated, err := tools.update(ctx, taskUpdateInput{
		TaskID:    created.ID.String(),
		Title:     "Buy oat milk",
		Completed: &completed,
	})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.Empty(t, updated.Description)
	assert.False(t, updated.Completed)

	shown, err := tools.show(ctx, taskIDInput{TaskID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, *updated, *shown)

	deleted, err := tools.delete(ctx, taskIDInput{TaskID: created.ID.String()})
	require.NoError(t, err)
	assert.False(t, deleted.AlreadyAbsent)

	again, err := tools.delete(ctx, taskIDInput{TaskID: created.ID.String()})
	require.NoError(t, err)
	assert.True(t, again.AlreadyAbsent)

	_, err = tools.show(ctx, taskIDInput{TaskID: created.ID.String()})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskTools_InvalidInput(t *testing.T) {
	ctx := context.Background()
	tools := &taskTools{app: newTestApp(t)}

	_, err := tools.create(ctx, taskCreateInput{Title: "   "})
	assert.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = tools.list(ctx, taskListInput{Filter: "later"})
	assert.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = tools.toggle(ctx, taskIDInput{TaskID: "not-a-uuid"})
	assert.Error(t, err)

	_, err = tools.update(ctx, taskUpdateInput{TaskID: uuid.NewString(), Title: "x"})
	assert.EqualError(t, err, "completed is required")
}

func TestTaskTools_WithoutEngine(t *testing.T) {
	tools := &taskTools{app: &cli.App{}}

	_, err := tools.list(context.Background(), taskListInput{})
	assert.Error(t, err)
}

func TestTaskResource_FiltersView(t *testing.T) {
	ctx := context.Background()
	tools := &taskTools{app: newTestApp(t)}

	_, err := tools.create(ctx, taskCreateInput{Title: "Open"})
	require.NoError(t, err)

	content, err := tools.resource(ctx, "checklist://tasks/completed", task.FilterCompleted)
	require.NoError(t, err)
	assert.Equal(t, "application/json", content.MimeType)
	assert.Contains(t, content.Text, `"filter": "completed"`)
	assert.Contains(t, content.Text, `"total": 1`)
	assert.NotContains(t, content.Text, "Open")
}

func TestToolError_HidesStoreCause(t *testing.T) {
	err := toolError(task.Unavailable(errors.New("dial tcp 10.0.0.1:5432: refused")))
	assert.ErrorIs(t, err, task.ErrStoreUnavailable)
	assert.NotContains(t, err.Error(), "10.0.0.1")
}
