// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration, the local session database, the account service
// client, and an interactive REPL. Typical flow: restore the session, open
// the profile if one was restored or the login prompt otherwise, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Signup with email OTP verification and resend
//   - Login / Logout
//   - Forgot password: request a code, reset with code and new password
//   - Profile view and edit (login required)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
