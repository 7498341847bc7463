// Package session owns the client's authenticated identity.
//
// Manager is the single source of truth for "is somebody logged in". It is
// created once by the application and handed to every consumer; there is no
// package-level session. At startup Initialize restores the session from a
// Store (MetadataStore keeps it in the local sqlite database); until it
// returns, Loading is true and IsAuthenticated must not be relied on.
//
// Login, UpdateUser and Logout write through to the store while holding the
// manager's lock, so a restart right after any of them observes the result.
package session
