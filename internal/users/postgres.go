package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/seminarhub/userdb/internal/common"
	"github.com/seminarhub/userdb/internal/cryptox"
	"github.com/seminarhub/userdb/internal/dbx"
	"github.com/seminarhub/userdb/internal/logging"
)

const uniqueViolation = "23505"

// epoch is the default email_reset_time for accounts that never requested a
// reset.
var epoch = time.Unix(0, 0).UTC()

// PostgresRepository implements Repository over the users table.
//
// The write capability is fixed at construction; against a replica every
// mutating operation logs and returns without touching storage, so request
// handling never crashes on a read-only connection.
type PostgresRepository struct {
	db              *sql.DB
	hasher          *cryptox.Hasher
	log             logging.Logger
	readWrite       bool
	defaultTimezone string
}

// NewPostgresRepository constructs a user repository. defaultTimezone is
// applied to accounts created without an explicit one.
func NewPostgresRepository(db *sql.DB, hasher *cryptox.Hasher, log logging.Logger, readWrite bool, defaultTimezone string) *PostgresRepository {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &PostgresRepository{
		db:              db,
		hasher:          hasher,
		log:             log,
		readWrite:       readWrite,
		defaultTimezone: defaultTimezone,
	}
}

// CanWrite reports the capability fixed at construction.
func (r *PostgresRepository) CanWrite() bool {
	return r.readWrite
}

// Create validates the required fields, hashes the password, applies
// defaults and inserts the record. The duplicate check and the insert run in
// one transaction so a partial creation is never observable.
//
// In read-only mode Create logs and returns (nil, nil).
func (r *PostgresRepository) Create(ctx context.Context, params NewUserParams) (*UserRecord, error) {
	for _, field := range []struct{ name, value string }{
		{ColUsername, params.Username},
		{ColPassword, params.Password},
		{ColFullName, params.FullName},
		{ColApprover, params.Approver},
	} {
		if field.value == "" {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingField, field.name)
		}
	}

	if !r.readWrite {
		r.log.Info(ctx, "no attempt to create user, not enough privileges", "username", params.Username)
		return nil, nil
	}

	hashed, err := r.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	icsKey, err := common.GenerateKey(common.KeyLength)
	if err != nil {
		return nil, fmt.Errorf("generating ics key: %w", err)
	}

	rec := &UserRecord{
		Username:       params.Username,
		PasswordHash:   hashed,
		FullName:       optional(params.FullName),
		Email:          optional(params.Email),
		EmailConfirmed: params.EmailConfirmed,
		EmailResetTime: epoch,
		Homepage:       optional(NormalizeHomepage(params.Homepage)),
		Timezone:       params.Timezone,
		Location:       optional(params.Location),
		Created:        time.Now().UTC(),
		Approver:       params.Approver,
		Admin:          params.Admin,
		Editor:         params.Editor,
		Creator:        params.Creator,
		ICSKey:         icsKey,
	}
	if rec.Timezone == "" {
		rec.Timezone = r.defaultTimezone
	}

	insert := fmt.Sprintf(
		"INSERT INTO users (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)",
		strings.Join(Columns, ", "),
	)

	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = $1`, rec.Username).Scan(&one)
		if err == nil {
			return common.ErrDuplicateUser
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("db error: %w", err)
		}

		_, err = tx.ExecContext(ctx, insert,
			rec.Username, rec.PasswordHash, rec.FullName, rec.Email,
			rec.EmailConfirmed, rec.EmailResetCode, rec.EmailResetTime,
			rec.Homepage, rec.Timezone, rec.Location, rec.Created,
			rec.Approver, rec.Admin, rec.Editor, rec.Creator, rec.ICSKey)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return common.ErrDuplicateUser
			}
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Exists reports whether a record with the given username is present.
func (r *PostgresRepository) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = $1`, username).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

// Lookup loads the record for username. It returns common.ErrNotFound when
// no row matches and common.ErrIntegrity when more than one does; the
// latter means an external writer corrupted the unique key and must surface
// to the caller rather than silently picking a row.
func (r *PostgresRepository) Lookup(ctx context.Context, username string) (*UserRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = $1", strings.Join(Columns, ", "))

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var rec *UserRecord
	for rows.Next() {
		if rec != nil {
			return nil, fmt.Errorf("%w: multiple records for username %q", common.ErrIntegrity, username)
		}
		rec, err = scanRecord(rows)
		if err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if rec == nil {
		return nil, common.ErrNotFound
	}
	return rec, nil
}

// Save writes exactly the supplied columns for username in one statement.
// Column names are checked against the declared schema; the identifier,
// creation timestamp and feed key cannot be changed.
func (r *PostgresRepository) Save(ctx context.Context, username string, changes map[string]any) error {
	if username == "" {
		return common.ErrMissingIdentifier
	}
	if len(changes) == 0 {
		return common.ErrNoChanges
	}
	for name := range changes {
		if !mutableColumns[name] {
			return fmt.Errorf("column %q is not saveable", name)
		}
	}

	if !r.readWrite {
		r.log.Info(ctx, "no attempt to save, not enough privileges", "username", username)
		return nil
	}

	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		assignments[i] = fmt.Sprintf("%s = $%d", name, i+1)
		args = append(args, changes[name])
	}
	args = append(args, username)

	query := fmt.Sprintf("UPDATE users SET %s WHERE username = $%d",
		strings.Join(assignments, ", "), len(names)+1)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ChangePassword hashes newPassword and overwrites the stored hash. It
// returns false without mutation in read-only mode and common.ErrNotFound
// when the username is unknown.
func (r *PostgresRepository) ChangePassword(ctx context.Context, username, newPassword string) (bool, error) {
	if !r.readWrite {
		r.log.Info(ctx, "no attempt to change password, not enough privileges", "username", username)
		return false, nil
	}

	hashed, err := r.hasher.Hash(newPassword)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE users SET password = $1 WHERE username = $2`, hashed, username)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return false, common.ErrNotFound
	}

	r.log.Info(ctx, "password changed", "username", username)
	return true, nil
}

// VerifyCredentials compares password against the stored hash for username.
// An unknown username is common.ErrNotFound; a wrong password is simply
// false, so callers can layer lockout policy without exception-driven flow.
func (r *PostgresRepository) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	var stored string
	err := r.db.QueryRowContext(ctx, `SELECT password FROM users WHERE username = $1`, username).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, common.ErrNotFound
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return r.hasher.Verify(password, stored), nil
}

// ListSummary returns the username and display name of every account.
func (r *PostgresRepository) ListSummary(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, full_name FROM users`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return collectSummaries(rows)
}

// LookupMany resolves display names for a batch of usernames.
func (r *PostgresRepository) LookupMany(ctx context.Context, usernames []string) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, full_name FROM users WHERE username = ANY($1)`, usernames)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return collectSummaries(rows)
}

func collectSummaries(rows *sql.Rows) ([]Summary, error) {
	var out []Summary
	for rows.Next() {
		var username string
		var fullName sql.NullString
		if err := rows.Scan(&username, &fullName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		display := username
		if fullName.Valid && fullName.String != "" {
			display = fullName.String
		}
		out = append(out, Summary{Username: username, DisplayName: display})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func scanRecord(rows *sql.Rows) (*UserRecord, error) {
	var (
		rec            UserRecord
		fullName       sql.NullString
		email          sql.NullString
		emailResetCode sql.NullString
		homepage       sql.NullString
		location       sql.NullString
	)
	err := rows.Scan(
		&rec.Username, &rec.PasswordHash, &fullName, &email,
		&rec.EmailConfirmed, &emailResetCode, &rec.EmailResetTime,
		&homepage, &rec.Timezone, &location, &rec.Created,
		&rec.Approver, &rec.Admin, &rec.Editor, &rec.Creator, &rec.ICSKey)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.FullName = fromNull(fullName)
	rec.Email = fromNull(email)
	rec.EmailResetCode = fromNull(emailResetCode)
	rec.Homepage = fromNull(homepage)
	rec.Location = fromNull(location)
	return &rec, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

var _ Repository = (*PostgresRepository)(nil)
