package users

import (
	"context"
	"errors"
	"time"

	"github.com/seminarhub/userdb/internal/common"
	"github.com/seminarhub/userdb/internal/logging"
)

// Account is the role-query contract the request-handling layer sees. Both a
// loaded *User and the Anonymous value implement it, so "no logged-in user"
// needs no nil checks.
type Account interface {
	Name() string
	IsAdmin() bool
	IsEditor() bool
	IsCreator() bool
	IsAuthenticated() bool
	IsAnonymous() bool
}

// User is the in-memory view of one account. Setters record the touched
// column in a changed-field set; Save flushes exactly those columns through
// the store. The authenticated flag is the result of the last password check
// on this instance only — it is not durable session state and must be
// re-established per request.
type User struct {
	store storeAPI
	log   logging.Logger

	username string
	rec      UserRecord
	exists   bool

	changes       map[string]any
	authenticated bool
}

// storeAPI is the slice of Repository the entity needs. Kept narrow so tests
// can substitute small fakes.
type storeAPI interface {
	Lookup(ctx context.Context, username string) (*UserRecord, error)
	Save(ctx context.Context, username string, changes map[string]any) error
	VerifyCredentials(ctx context.Context, username, password string) (bool, error)
}

// NewUser builds the entity for username, loading the record when it exists.
// When it does not, the entity holds defaults and Exists reports false;
// callers must check before relying on loaded fields. Integrity violations
// from the store propagate.
func NewUser(ctx context.Context, store storeAPI, log logging.Logger, username string) (*User, error) {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	u := &User{
		store:    store,
		log:      log,
		username: username,
		changes:  make(map[string]any),
	}

	rec, err := store.Lookup(ctx, username)
	switch {
	case err == nil:
		u.rec = *rec
		u.exists = true
	case errors.Is(err, common.ErrNotFound):
		u.rec.Username = username
	default:
		return nil, err
	}
	return u, nil
}

// Username returns the immutable identifier.
func (u *User) Username() string { return u.username }

// Exists reports whether the entity was loaded from a persisted record.
func (u *User) Exists() bool { return u.exists }

// Dirty reports whether unsaved changes are pending.
func (u *User) Dirty() bool { return len(u.changes) > 0 }

// Name returns the full name, falling back to the username.
func (u *User) Name() string { return u.rec.DisplayName() }

func (u *User) FullName() string {
	if u.rec.FullName == nil {
		return ""
	}
	return *u.rec.FullName
}

func (u *User) SetFullName(fullName string) {
	u.rec.FullName = optional(fullName)
	u.touch(ColFullName, fullName)
}

func (u *User) Email() string {
	if u.rec.Email == nil {
		return ""
	}
	return *u.rec.Email
}

func (u *User) SetEmail(email string) {
	u.rec.Email = optional(email)
	u.touch(ColEmail, email)
}

func (u *User) EmailConfirmed() bool { return u.rec.EmailConfirmed }

func (u *User) SetEmailConfirmed(confirmed bool) {
	u.rec.EmailConfirmed = confirmed
	u.touch(ColEmailConfirmed, confirmed)
}

func (u *User) EmailResetCode() string {
	if u.rec.EmailResetCode == nil {
		return ""
	}
	return *u.rec.EmailResetCode
}

func (u *User) SetEmailResetCode(code string) {
	u.rec.EmailResetCode = optional(code)
	u.touch(ColEmailResetCode, code)
}

func (u *User) EmailResetTime() time.Time { return u.rec.EmailResetTime }

func (u *User) SetEmailResetTime(t time.Time) {
	u.rec.EmailResetTime = t.UTC()
	u.touch(ColEmailResetTime, u.rec.EmailResetTime)
}

func (u *User) Homepage() string {
	if u.rec.Homepage == nil {
		return ""
	}
	return *u.rec.Homepage
}

// SetHomepage normalizes bare hostnames by prepending a default scheme
// before recording the change.
func (u *User) SetHomepage(url string) {
	url = NormalizeHomepage(url)
	u.rec.Homepage = optional(url)
	u.touch(ColHomepage, url)
}

func (u *User) Timezone() string { return u.rec.Timezone }

func (u *User) SetTimezone(tz string) {
	u.rec.Timezone = tz
	u.touch(ColTimezone, tz)
}

func (u *User) Location() string {
	if u.rec.Location == nil {
		return ""
	}
	return *u.rec.Location
}

func (u *User) SetLocation(location string) {
	u.rec.Location = optional(location)
	u.touch(ColLocation, location)
}

// Created returns the account creation time (zero for unloaded entities).
func (u *User) Created() time.Time { return u.rec.Created }

// ICSKey returns the calendar feed key generated at creation.
func (u *User) ICSKey() string { return u.rec.ICSKey }

func (u *User) IsAdmin() bool   { return u.rec.Admin }
func (u *User) IsEditor() bool  { return u.rec.Editor }
func (u *User) IsCreator() bool { return u.rec.Creator }

// MakeAdmin grants the admin role. There is no demotion path; roles are
// only ever set, never unset.
func (u *User) MakeAdmin() {
	u.rec.Admin = true
	u.touch(ColAdmin, true)
}

func (u *User) MakeEditor() {
	u.rec.Editor = true
	u.touch(ColEditor, true)
}

func (u *User) MakeCreator() {
	u.rec.Creator = true
	u.touch(ColCreator, true)
}

// IsAuthenticated reports the result of the last Authenticate call on this
// instance.
func (u *User) IsAuthenticated() bool { return u.authenticated }

// IsAnonymous is the inverse of IsAuthenticated, matching the contract the
// web layer's login machinery expects.
func (u *User) IsAnonymous() bool { return !u.authenticated }

// Authenticate checks the given password. It fails closed when no password
// hash was loaded (logging a warning) and otherwise delegates to the store.
// The result is cached on the instance but is per-call state, not a standing
// grant.
func (u *User) Authenticate(ctx context.Context, password string) (bool, error) {
	if u.rec.PasswordHash == "" {
		u.log.Warn(ctx, "no password hash loaded", "username", u.username)
		u.authenticated = false
		return false, nil
	}

	ok, err := u.store.VerifyCredentials(ctx, u.username, password)
	if err != nil {
		u.authenticated = false
		return false, err
	}
	u.authenticated = ok
	return ok, nil
}

// Save flushes the changed columns through the store and clears the change
// set on success. A clean entity is a no-op. Saving an entity whose
// identifier was never persisted surfaces common.ErrNotFound.
func (u *User) Save(ctx context.Context) error {
	if len(u.changes) == 0 {
		return nil
	}
	u.log.Debug(ctx, "saving user", "username", u.username, "fields", len(u.changes))

	if err := u.store.Save(ctx, u.username, u.changes); err != nil {
		return err
	}
	u.changes = make(map[string]any)
	return nil
}

func (u *User) touch(column string, value any) {
	u.changes[column] = value
}

var _ Account = (*User)(nil)
