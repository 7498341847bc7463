package users

import "time"

// User is one account of the stub service. Accounts start unverified and
// become usable once the signup code is confirmed.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	ProfileImage string
	PasswordHash []byte
	Verified     bool
	CreatedAt    time.Time
}

// ProfileChange lists the fields a profile update touches. Nil fields are
// left alone.
type ProfileChange struct {
	Name            *string
	Phone           *string
	ProfileImage    *string
	CurrentPassword *string
	NewPassword     *string
}
