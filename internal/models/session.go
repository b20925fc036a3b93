package models

import "time"

// Session proves that its holder logged in as UserID. The store keeps
// expired sessions; consumers must check IsValid before trusting one.
type Session struct {
	ID        string    `msgpack:"id"`
	UserID    string    `msgpack:"user_id"`
	ExpiresAt time.Time `msgpack:"expires_at"`
}

// IsValid reports whether the session is still usable at now.
func (s *Session) IsValid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
