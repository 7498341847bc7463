// Package client is the gophauth boundary to the remote account service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): Signup,
//     VerifyOTP, Login, ForgotPassword, ResetPassword, GetProfile,
//     UpdateProfile and Ping.
//  2. A JSON-over-HTTP implementation (see HTTPClient) rooted at a single
//     configurable base URL. Authenticated calls carry the token as
//     "Authorization: Bearer <token>"; every request gets an X-Request-ID.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     sqlite file and applies the embedded goose migrations.
//
// # Response shapes
//
// Login answers {success, token, user}; verify-otp answers
// {success, data: {user, token}}. Both are turned into a models.Session by
// models.NewSession so no caller depends on either shape.
//
// # Error Handling
//
//   - ErrUnavailable: network failure or a body that is not the expected JSON.
//   - ErrUnauthorized: an authenticated call was refused (401/403).
//   - *RemoteError: success:false, carrying the server message verbatim.
package client
