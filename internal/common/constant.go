// Package common contains constants shared by the gophauth client and the
// stub account service.
package common

// AuthorizationHeaderName carries the bearer credential on authenticated
// requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the session token in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates client log lines with server log lines.
const RequestIDHeaderName = "X-Request-ID"

// OTPLength is the number of digits in a one-time code.
const OTPLength = 6

// MinPasswordLength is the shortest new password accepted before any
// network call is made.
const MinPasswordLength = 6
