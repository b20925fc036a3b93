package services

import (
	"time"

	"github.com/dmitrijs2005/docsim/internal/common"
)

// Principal is the authenticated caller, obtained from AuthService.Authenticate
// and passed explicitly to every operation that acts on a user's behalf.
type Principal struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

// check rejects a missing or expired principal.
func (p *Principal) check(now time.Time) error {
	if p == nil || p.UserID == "" || !now.Before(p.ExpiresAt) {
		return common.ErrorNotAuthenticated
	}
	return nil
}
