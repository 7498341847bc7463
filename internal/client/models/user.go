package models

import (
	"encoding/json"
	"strings"
)

// User is the account record returned by the account service. Email is set
// by the server and never changed by the client.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Valid reports whether u identifies an account: both id and email present.
func (u *User) Valid() bool {
	return u != nil && strings.TrimSpace(u.ID) != "" && strings.TrimSpace(u.Email) != ""
}

// UserPatch lists the mutable user fields to change. Nil fields are left as is.
type UserPatch struct {
	Name         *string
	Phone        *string
	ProfileImage *string
}

// PatchFrom turns a full user record into a patch that overwrites every
// mutable field.
func PatchFrom(u User) UserPatch {
	return UserPatch{Name: &u.Name, Phone: &u.Phone, ProfileImage: &u.ProfileImage}
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.ProfileImage == nil
}

// Apply returns a copy of u with the patch fields written over it.
// ID and Email are never touched.
func (u User) Apply(p UserPatch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	return u
}

// UnmarshalJSON accepts "_id" as an alias of "id"; some deployments of the
// account service return the raw document key.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		DocumentID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.DocumentID
	}
	return nil
}
