// Package auth implements the session gate: credential checks, session tokens
// and the role guard every mutation goes through.
package auth

import (
	"context"

	"github.com/mmynk/peopleevents/internal/models"
)

// Authenticator verifies a username/credential pair.
// The credential table is a collaborator behind this interface so it can be
// swapped for an external identity service without touching the services.
type Authenticator interface {
	// Authenticate returns the session for a matching pair.
	// Any mismatch, including an unknown username, returns ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, credential string) (*models.Session, error)
}
