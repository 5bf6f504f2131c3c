package config

import (
	"encoding/json"
	"os"

	"github.com/seminarhub/userdb/internal/flagx"
	"github.com/seminarhub/userdb/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Duration fields use
// timex.Duration so both "24h" strings and integer nanoseconds parse.
type JsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	DefaultTimezone string         `json:"default_timezone"`
	TokenTTL        timex.Duration `json:"token_ttl"`
	TokenRetention  timex.Duration `json:"token_retention"`
	BcryptCost      int            `json:"bcrypt_cost"`
}

// parseJson overlays configuration values from an optional JSON file named
// by the -c/-config flag. Absent fields keep their current (default) values.
// An unreadable or invalid file panics: a misconfigured deployment should
// not come up at all.
func parseJson(config *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.DefaultTimezone != "" {
		config.DefaultTimezone = c.DefaultTimezone
	}
	if c.TokenTTL != 0 {
		config.TokenTTL = c.TokenTTL.Std()
	}
	if c.TokenRetention != 0 {
		config.TokenRetention = c.TokenRetention.Std()
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
