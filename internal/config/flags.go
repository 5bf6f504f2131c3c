package config

import (
	"flag"
	"os"
	"time"

	"github.com/seminarhub/userdb/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   PostgreSQL DSN
//	-z string   default account timezone (e.g. "America/New_York")
//	-t int      token TTL, hours
//	-r int      token retention before purge, days
//	-w int      bcrypt work factor
//
// os.Args is first filtered to only the flags handled here (via
// flagx.FilterArgs), so subcommands can carry their own flags on the same
// command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-z", "-t", "-r", "-w"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DefaultTimezone, "z", config.DefaultTimezone, "default account timezone")

	tokenTTL := fs.Int("t", int(config.TokenTTL.Hours()), "token TTL (in hours)")
	tokenRetention := fs.Int("r", int(config.TokenRetention.Hours()/24), "token retention before purge (in days)")

	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt work factor")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenTTL = time.Duration(*tokenTTL) * time.Hour
	config.TokenRetention = time.Duration(*tokenRetention) * 24 * time.Hour
}
