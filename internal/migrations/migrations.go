// Package migrations embeds the versioned SQL schema for the user database.
// The schema is declared here explicitly and applied with goose at startup;
// nothing is introspected from the live database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
