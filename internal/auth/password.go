package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/peopleevents/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("duplicate username in credential table")
)

// Credential is one entry of the credential table.
type Credential struct {
	Username     string
	PasswordHash string
	Role         models.Role
}

// CredentialTable authenticates against a fixed set of bcrypt-hashed credentials.
type CredentialTable struct {
	byUsername map[string]Credential
	dummyHash  []byte
}

var _ Authenticator = (*CredentialTable)(nil)

// NewCredentialTable builds a table from the given entries.
func NewCredentialTable(creds []Credential) (*CredentialTable, error) {
	byUsername := make(map[string]Credential, len(creds))
	for _, c := range creds {
		if c.Username == "" || c.PasswordHash == "" {
			return nil, fmt.Errorf("credential for %q is incomplete", c.Username)
		}
		if _, err := models.ParseRole(string(c.Role)); err != nil {
			return nil, fmt.Errorf("credential for %q: %w", c.Username, err)
		}
		if _, ok := byUsername[c.Username]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, c.Username)
		}
		byUsername[c.Username] = c
	}

	// Compared against when the username is unknown so both failure paths cost the same.
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	return &CredentialTable{byUsername: byUsername, dummyHash: dummy}, nil
}

// HashPassword returns the bcrypt hash of a plain-text password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// DefaultCredentials returns the built-in admin and member entries.
func DefaultCredentials() ([]Credential, error) {
	defaults := []struct {
		username, password string
		role               models.Role
	}{
		{"admin", "admin123", models.RoleAdmin},
		{"member", "member123", models.RoleMember},
	}

	creds := make([]Credential, 0, len(defaults))
	for _, d := range defaults {
		hash, err := HashPassword(d.password)
		if err != nil {
			return nil, err
		}
		creds = append(creds, Credential{Username: d.username, PasswordHash: hash, Role: d.role})
	}
	return creds, nil
}

// Authenticate checks the pair against the table.
func (t *CredentialTable) Authenticate(ctx context.Context, username, credential string) (*models.Session, error) {
	entry, ok := t.byUsername[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(t.dummyHash, []byte(credential))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(entry.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &models.Session{Role: entry.Role, Username: entry.Username}, nil
}
