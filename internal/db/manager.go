// Package db wires the postgres connection, the startup schema check and the
// repositories together behind a single manager handle.
package db

import (
	"context"
	"database/sql"

	"github.com/seminarhub/userdb/internal/tokens"
	"github.com/seminarhub/userdb/internal/users"
)

// RepositoryManager hands out the stores sharing one database connection.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	CanWrite() bool
	Users() users.Repository
	Tokens() tokens.Repository
	Close() error
}
