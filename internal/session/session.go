// Package session maps the logged-in identity to its role and approval
// status and answers the visibility question the rest of the app asks.
package session

import (
	"github.com/araujodev/zapvitrine/internal/models"
)

type Session struct {
	User *models.User
}

// Visible reports whether prices and the cart may be shown: there must be a
// logged-in user and that user must be approved.
func (s *Session) Visible() bool {
	return s != nil && s.User != nil && s.User.Status == models.StatusApproved
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User != nil && s.User.Role == models.RoleAdmin
}

func (s *Session) UID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.UID
}
