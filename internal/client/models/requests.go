package models

import "errors"

var ErrCurrentPasswordRequired = errors.New("current password is required to change password")

// SignupRequest is the signup form payload. It is kept verbatim by the signup
// flow so a resend can replay it.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of PUT /user/profile. Only changed fields are set.
type ProfileUpdate struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ProfileImage    *string `json:"profileImage,omitempty"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.ProfileImage == nil &&
		p.CurrentPassword == nil && p.NewPassword == nil
}

// ProfileForm is what the user typed on the edit-profile screen.
type ProfileForm struct {
	Name            string
	Phone           string
	ProfileImage    string
	CurrentPassword string
	NewPassword     string
}

// FormFor pre-fills the edit form from the current user.
func FormFor(u User) ProfileForm {
	return ProfileForm{Name: u.Name, Phone: u.Phone, ProfileImage: u.ProfileImage}
}

// Diff builds the update for form against current, including only the
// profile fields that changed. A new password requires the current one.
func (f ProfileForm) Diff(current User) (ProfileUpdate, error) {
	var upd ProfileUpdate
	if f.Name != current.Name {
		upd.Name = ptr(f.Name)
	}
	if f.Phone != current.Phone {
		upd.Phone = ptr(f.Phone)
	}
	if f.ProfileImage != current.ProfileImage {
		upd.ProfileImage = ptr(f.ProfileImage)
	}

	if f.NewPassword != "" {
		if f.CurrentPassword == "" {
			return ProfileUpdate{}, ErrCurrentPasswordRequired
		}
		upd.CurrentPassword = ptr(f.CurrentPassword)
		upd.NewPassword = ptr(f.NewPassword)
	}
	return upd, nil
}

func ptr(s string) *string { return &s }
