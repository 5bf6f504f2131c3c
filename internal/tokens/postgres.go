package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/seminarhub/userdb/internal/common"
	"github.com/seminarhub/userdb/internal/logging"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over the tokens table.
//
// When constructed without write capability every mutating operation is a
// logged no-op rather than an error, so the store stays usable against a
// read replica.
type PostgresRepository struct {
	db        *sql.DB
	log       logging.Logger
	readWrite bool
	ttl       time.Duration
	retention time.Duration
}

// NewPostgresRepository constructs a token repository. ttl is the lifetime
// of issued tokens; retention is how long rows are kept past their expiry
// before PurgeExpired removes them.
func NewPostgresRepository(db *sql.DB, log logging.Logger, readWrite bool, ttl, retention time.Duration) *PostgresRepository {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &PostgresRepository{db: db, log: log, readWrite: readWrite, ttl: ttl, retention: retention}
}

// Issue inserts one row per id in a single statement, each expiring ttl from
// now (UTC). Issuing an id that already exists fails the whole batch with
// common.ErrDuplicateToken.
func (r *PostgresRepository) Issue(ctx context.Context, ids []string) error {
	if !r.readWrite {
		r.log.Info(ctx, "no attempt to issue tokens, not enough privileges")
		return nil
	}
	if len(ids) == 0 {
		return nil
	}

	expire := time.Now().UTC().Add(r.ttl)

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)*2)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
		args = append(args, id, expire)
	}

	query := "INSERT INTO tokens (id, expire) VALUES " + strings.Join(placeholders, ", ")
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrDuplicateToken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// IsValid reports whether a token row with the given id exists.
//
// Expiry is deliberately not checked here: a token past its TTL but not yet
// purged still reads as valid. The retention window (longer than the TTL) is
// a grace period, and the purge is the sole enforcement of expiry.
func (r *PostgresRepository) IsValid(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM tokens WHERE id = $1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

// Revoke deletes the token with the given id. Deleting a nonexistent token
// is not an error.
func (r *PostgresRepository) Revoke(ctx context.Context, id string) error {
	if !r.readWrite {
		r.log.Info(ctx, "no attempt to revoke token, not enough privileges")
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// PurgeExpired deletes all tokens whose expiry is older than now minus the
// retention window and returns the number removed. Intended to run on a
// periodic schedule, not per request; it is safe to run concurrently with
// issuance and revocation.
func (r *PostgresRepository) PurgeExpired(ctx context.Context) (int64, error) {
	if !r.readWrite {
		r.log.Info(ctx, "no attempt to delete old tokens, not enough privileges")
		return 0, nil
	}

	cutoff := time.Now().UTC().Add(-r.retention)
	res, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE expire < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return removed, nil
}

var _ Repository = (*PostgresRepository)(nil)
