package config

import (
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// Config holds runtime settings for the gophauth CLI.
//
// Fields:
//   - ServerBaseURL: the one base URL every account service call is made under.
//   - DatabasePath: sqlite file holding the persisted session.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - OnlineCheckInterval: how often the client checks server reachability.
//   - LogBackend, LogFormat: see logging.New.
//   - Interactive: use the TUI widgets for OTP entry and forms.
type Config struct {
	ServerBaseURL       string
	DatabasePath        string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogBackend          string
	LogFormat           string
	Interactive         bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.DatabasePath = "gophauth.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogBackend = logging.BackendSlog
	c.LogFormat = "text"
	c.Interactive = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
