package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GOPHAUTH_"

// parseEnv overlays Config with GOPHAUTH_* variables. A .env file is loaded
// first if present; variables already set in the process win over it.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := lookup("SERVER_URL"); ok {
		cfg.ServerBaseURL = v
	}
	if v, ok := lookup("DB_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup("REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = mustDuration("REQUEST_TIMEOUT", v)
	}
	if v, ok := lookup("ONLINE_CHECK_INTERVAL"); ok {
		cfg.OnlineCheckInterval = mustDuration("ONLINE_CHECK_INTERVAL", v)
	}
	if v, ok := lookup("LOG_BACKEND"); ok {
		cfg.LogBackend = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := lookup("INTERACTIVE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(envPrefix + "INTERACTIVE: " + err.Error())
		}
		cfg.Interactive = b
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(envPrefix + name + ": " + err.Error())
	}
	return d
}
