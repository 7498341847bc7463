// Package config loads runtime configuration for the gophauth client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after an optional .env file in the working
//     directory has been loaded (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the account service, e.g. http://localhost:5000/api
//	-d string   path of the local sqlite database holding the session
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//
// Environment
//
//	GOPHAUTH_SERVER_URL, GOPHAUTH_DB_PATH, GOPHAUTH_REQUEST_TIMEOUT,
//	GOPHAUTH_ONLINE_CHECK_INTERVAL, GOPHAUTH_LOG_BACKEND, GOPHAUTH_LOG_FORMAT,
//	GOPHAUTH_INTERACTIVE
//
// Durations in the environment use Go syntax ("10s").
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds. Absent keys keep earlier values:
//
//	{
//	  "server_base_url": "http://localhost:5000/api",
//	  "database_path": "gophauth.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "log_backend": "slog",
//	  "log_format": "text",
//	  "interactive": true
//	}
//
// Invalid values in any source make LoadConfig panic, as a misconfigured
// client cannot start.
package config
