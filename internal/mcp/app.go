package mcp

import (
	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/felixgeelhaar/checklist/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided
// container, acting for the container's configured owner.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(container.Engine)
	cliApp.SetCurrentUserID(container.OwnerID)
	cliApp.Config = container.Config
	cliApp.Health = container.Health
	return cliApp
}
