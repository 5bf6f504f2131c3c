package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/seminarhub/userdb/internal/config"
	"github.com/seminarhub/userdb/internal/cryptox"
	"github.com/seminarhub/userdb/internal/logging"
	"github.com/seminarhub/userdb/internal/migrations"
	"github.com/seminarhub/userdb/internal/tokens"
	"github.com/seminarhub/userdb/internal/users"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	readWrite bool
	users     users.Repository
	tokens    tokens.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

// CanWrite reports the capability probed once at construction.
func (m *PostgresRepositoryManager) CanWrite() bool {
	return m.readWrite
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Tokens() tokens.Repository {
	return m.tokens
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// RunMigrations applies the embedded schema migrations. The schema is
// declared in internal/migrations rather than introspected from the live
// database.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

// probeWriteCapability determines once whether this connection may mutate
// the user database: it must not be a recovering replica and the role needs
// CREATE on the schema (which also covers running migrations).
func probeWriteCapability(ctx context.Context, db *sql.DB) (bool, error) {
	var canWrite bool
	err := db.QueryRowContext(ctx,
		`SELECT NOT pg_is_in_recovery() AND has_schema_privilege(current_user, 'public', 'CREATE')`).
		Scan(&canWrite)
	if err != nil {
		return false, fmt.Errorf("probing write capability: %w", err)
	}
	return canWrite, nil
}

// NewPostgresRepositoryManager opens the database, probes the write
// capability, applies migrations (writable connections only) and constructs
// the user and token repositories.
func NewPostgresRepositoryManager(ctx context.Context, cfg *config.Config, log logging.Logger) (RepositoryManager, error) {
	if log == nil {
		log = logging.NewDiscardLogger()
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	readWrite, err := probeWriteCapability(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	m := &PostgresRepositoryManager{
		db:        db,
		readWrite: readWrite,
		users: users.NewPostgresRepository(db, cryptox.NewHasher(cfg.BcryptCost),
			log, readWrite, cfg.DefaultTimezone),
		tokens: tokens.NewPostgresRepository(db, log, readWrite,
			cfg.TokenTTL, cfg.TokenRetention),
	}

	if readWrite {
		if err := m.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	} else {
		log.Info(ctx, "user database opened read-only, skipping migrations")
	}

	return m, nil
}

var _ RepositoryManager = (*PostgresRepositoryManager)(nil)
