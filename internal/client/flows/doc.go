// Package flows drives the two multi-step verification sequences:
// signup (profile, OTP, verified) and password reset (request code, OTP and
// new password, complete).
//
// Each flow is a pure reducer over an explicit state value. The controllers
// wrap a reducer with the network calls, a busy flag that rejects overlapping
// submissions, and the hand-off of a verified session to the session manager.
package flows
