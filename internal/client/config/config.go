package config

import (
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/filex"
)

// DefaultAPIBaseURL is the hosted backend.
const DefaultAPIBaseURL = "https://linkedin-clone-server-five.vercel.app/api/v1"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: root of the REST API, e.g. "https://host/api/v1".
//   - RequestTimeout: bound on every HTTP request; zero disables it.
//   - DatabasePath: local SQLite file holding the session token.
//   - NotificationTTL: how long a notification stays listed.
//   - SessionCheckInterval: how often the session is revalidated; zero disables it.
//   - Debug: human-readable debug logging on stderr.
type Config struct {
	APIBaseURL           string
	RequestTimeout       time.Duration
	DatabasePath         string
	NotificationTTL      time.Duration
	SessionCheckInterval time.Duration
	Debug                bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = filepath.Join(filex.DefaultStateDir(), "client.db")
	c.NotificationTTL = 6 * time.Second
	c.SessionCheckInterval = time.Minute
	c.Debug = false
}

// LoadConfig applies defaults, then overlays the JSON file (if any), the
// environment and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
