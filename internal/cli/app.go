// Package cli implements the userctl admin commands: account creation,
// password changes, listing, and token maintenance. It is the operator-facing
// counterpart of the stores; request handling lives in the web layer, not
// here.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/seminarhub/userdb/internal/config"
	"github.com/seminarhub/userdb/internal/db"
	"github.com/seminarhub/userdb/internal/logging"
)

type App struct {
	log     logging.Logger
	manager db.RepositoryManager
	out     io.Writer
}

// NewApp connects to the user database and prepares the command handlers.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	m, err := db.NewPostgresRepositoryManager(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return &App{log: log, manager: m, out: os.Stdout}, nil
}

func (a *App) Close() error {
	return a.manager.Close()
}

// Run dispatches one subcommand. args are the remaining command-line
// arguments after the command word; the config loader's own flags may be
// interleaved and are filtered out by each handler.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "add":
		return a.addUser(ctx, args)
	case "passwd":
		return a.changePassword(ctx, args)
	case "list":
		return a.listUsers(ctx)
	case "issue":
		return a.issueTokens(ctx, args)
	case "revoke":
		return a.revokeToken(ctx, args)
	case "purge":
		return a.purgeTokens(ctx)
	default:
		return fmt.Errorf("unknown command %q (want add, passwd, list, issue, revoke or purge)", command)
	}
}
