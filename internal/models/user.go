// Package models defines the records kept by the docsim store: users,
// documents and sessions.
package models

import "time"

// User is the stored identity. PasswordHash never leaves the service layer;
// callers outside it receive a Profile.
type User struct {
	ID           string    `msgpack:"id"`
	Email        string    `msgpack:"email"`
	PasswordHash string    `msgpack:"password_hash"`
	Name         string    `msgpack:"name"`
	AvatarURL    string    `msgpack:"avatar_url"`
	CreatedAt    time.Time `msgpack:"created_at"`
}

// Profile is a User with the password hash stripped.
type Profile struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	CreatedAt time.Time
}

// Profile returns the public view of u.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// UserPatch lists the profile fields a caller wants to change. A nil field
// was not supplied and keeps its stored value. Passwords are changed through
// a dedicated operation, never through a patch.
type UserPatch struct {
	Name      *string
	AvatarURL *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.AvatarURL == nil
}

// Apply merges the supplied fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}
