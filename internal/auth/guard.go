package auth

import (
	"errors"

	"github.com/mmynk/peopleevents/internal/models"
)

// ErrForbidden is returned when a read-only session attempts a mutation.
var ErrForbidden = errors.New("admin role required")

// RequireAdmin is the single authorization check for every mutating operation.
func RequireAdmin(session *models.Session) error {
	if session == nil {
		return ErrMissingToken
	}
	if !session.Role.CanMutate() {
		return ErrForbidden
	}
	return nil
}
