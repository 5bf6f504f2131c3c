package users

import "context"

// NewUserParams carries the inputs of account creation. Username, Password,
// FullName and Approver are required; everything else falls back to the
// defaults described in the schema.
type NewUserParams struct {
	Username string
	Password string
	FullName string
	Approver string

	Email          string
	EmailConfirmed bool
	Homepage       string
	Timezone       string
	Location       string
	Admin          bool
	Editor         bool
	Creator        bool
}

// Summary pairs a username with its display name (full name when set,
// otherwise the username itself).
type Summary struct {
	Username    string
	DisplayName string
}

// Repository defines persistence operations over the users table. The
// postgres implementation is the production store; entity tests substitute
// fakes.
type Repository interface {
	// CanWrite reports the capability fixed at store construction. All
	// mutating operations consult it and short-circuit when false.
	CanWrite() bool

	// Create validates, hashes the password, applies defaults and inserts a
	// new record atomically. In read-only mode it logs and returns
	// (nil, nil) without touching storage.
	Create(ctx context.Context, params NewUserParams) (*UserRecord, error)

	// Exists reports whether a record with the given username is present.
	Exists(ctx context.Context, username string) (bool, error)

	// Lookup loads one record. common.ErrNotFound when absent,
	// common.ErrIntegrity when the unique key matches more than one row.
	Lookup(ctx context.Context, username string) (*UserRecord, error)

	// Save writes exactly the supplied columns, keyed by username.
	Save(ctx context.Context, username string, changes map[string]any) error

	// ChangePassword hashes and overwrites the stored password, returning
	// true on success and false (without mutation) in read-only mode.
	ChangePassword(ctx context.Context, username, newPassword string) (bool, error)

	// VerifyCredentials compares password against the stored hash.
	// common.ErrNotFound when the username is unknown; a mismatch is the
	// boolean false, not an error.
	VerifyCredentials(ctx context.Context, username, password string) (bool, error)

	// ListSummary returns every account's username and display name.
	ListSummary(ctx context.Context) ([]Summary, error)

	// LookupMany resolves display names for a batch of usernames. Result
	// order is not guaranteed to match the input.
	LookupMany(ctx context.Context, usernames []string) ([]Summary, error)
}
