package cli

import (
	"github.com/felixgeelhaar/checklist/internal/productivity/application"
	"github.com/felixgeelhaar/checklist/pkg/config"
	"github.com/felixgeelhaar/checklist/pkg/observability"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	Engine *application.Engine

	// Current user context
	CurrentUserID uuid.UUID

	// Optional, used by serve and events.
	Config *config.Config
	Health *observability.HealthRegistry
}

// NewApp creates a new CLI application.
func NewApp(engine *application.Engine) *App {
	return &App{
		Engine:        engine,
		CurrentUserID: uuid.Nil,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// app is the global application instance
var app *App

// SetApp sets the global application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global application instance.
func GetApp() *App {
	return app
}

// RequireApp returns the App or an error when it was never initialized.
func RequireApp() (*App, error) {
	if app == nil || app.Engine == nil {
		return nil, errNotInitialized
	}
	return app, nil
}
