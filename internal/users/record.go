// Package users implements account storage and authentication for the
// seminar listing: the postgres-backed record store, the in-memory user
// entity with change tracking, and the anonymous null account.
package users

import (
	"strings"
	"time"
)

// Column names of the users table. The schema is declared here as a fixed,
// ordered set; it must stay in sync with the migrations under
// internal/migrations.
const (
	ColUsername       = "username"
	ColPassword       = "password"
	ColFullName       = "full_name"
	ColEmail          = "email"
	ColEmailConfirmed = "email_confirmed"
	ColEmailResetCode = "email_reset_code"
	ColEmailResetTime = "email_reset_time"
	ColHomepage       = "homepage"
	ColTimezone       = "timezone"
	ColLocation       = "location"
	ColCreated        = "created"
	ColApprover       = "approver"
	ColAdmin          = "admin"
	ColEditor         = "editor"
	ColCreator        = "creator"
	ColICSKey         = "ics_key"
)

// Columns lists every column in declared order, used to build SELECTs.
var Columns = []string{
	ColUsername, ColPassword, ColFullName, ColEmail, ColEmailConfirmed,
	ColEmailResetCode, ColEmailResetTime, ColHomepage, ColTimezone,
	ColLocation, ColCreated, ColApprover, ColAdmin, ColEditor, ColCreator,
	ColICSKey,
}

// mutableColumns are the columns Save accepts. The identifier, creation
// timestamp and feed key are set once at creation and never change.
var mutableColumns = map[string]bool{
	ColPassword:       true,
	ColFullName:       true,
	ColEmail:          true,
	ColEmailConfirmed: true,
	ColEmailResetCode: true,
	ColEmailResetTime: true,
	ColHomepage:       true,
	ColTimezone:       true,
	ColLocation:       true,
	ColApprover:       true,
	ColAdmin:          true,
	ColEditor:         true,
	ColCreator:        true,
}

// UserRecord is one persisted account. Optional columns are pointers; a nil
// pointer means the column is unset, mirroring the sparse rows the original
// table holds.
type UserRecord struct {
	Username       string
	PasswordHash   string
	FullName       *string
	Email          *string
	EmailConfirmed bool
	EmailResetCode *string
	EmailResetTime time.Time
	Homepage       *string
	Timezone       string
	Location       *string
	Created        time.Time
	Approver       string
	Admin          bool
	Editor         bool
	Creator        bool
	ICSKey         string
}

// DisplayName returns the full name, falling back to the username.
func (r *UserRecord) DisplayName() string {
	if r.FullName != nil && *r.FullName != "" {
		return *r.FullName
	}
	return r.Username
}

// NormalizeHomepage prepends a default scheme to bare hostnames so stored
// homepages are always addressable URLs.
func NormalizeHomepage(url string) string {
	if url == "" {
		return url
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "http://" + url
	}
	return url
}
