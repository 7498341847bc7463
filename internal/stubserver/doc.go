// Package stubserver is a small account service speaking the JSON contract
// the gophauth client expects under /api. It keeps users in memory and
// "mails" one-time codes to its log, which makes it suitable for local runs
// and for exercising the HTTP client in tests.
package stubserver
