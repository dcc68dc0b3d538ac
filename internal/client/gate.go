package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/client/sessionstore"
	"github.com/mmynk/peopleevents/internal/models"
)

// Gate logs in against the server and keeps the session persisted.
type Gate struct {
	auth     *api.AuthServiceClient
	sessions sessionstore.Store

	mu      sync.RWMutex
	session *models.Session
}

// NewGate builds a gate talking to the AuthService through authClient.
func NewGate(authClient *api.AuthServiceClient, sessions sessionstore.Store) *Gate {
	return &Gate{auth: authClient, sessions: sessions}
}

// Session returns the current session, or nil when logged out.
func (g *Gate) Session() *models.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// Login exchanges credentials for a session and persists it.
// On failure neither the in-memory nor the persisted session changes.
func (g *Gate) Login(ctx context.Context, username, password string) (*models.Session, error) {
	resp, err := g.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Username: username,
		Password: password,
	}))
	if err != nil {
		if connect.CodeOf(err) == connect.CodeUnauthenticated {
			return nil, ErrInvalidCredentials
		}
		return nil, classify(err)
	}

	session := resp.Msg.Session
	if err := g.sessions.Save(ctx, &session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	g.mu.Lock()
	g.session = &session
	g.mu.Unlock()

	slog.Debug("Logged in", "username", session.Username, "role", session.Role)
	return &session, nil
}

// Restore loads the persisted session, if any, and treats the user as
// authenticated without re-submitting credentials.
func (g *Gate) Restore(ctx context.Context) (*models.Session, error) {
	session, err := g.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.session = session
	g.mu.Unlock()

	return session, nil
}

// Logout tells the server and clears the persisted session. The local session
// is cleared even if the server cannot be reached.
func (g *Gate) Logout(ctx context.Context) error {
	if session := g.Session(); session != nil {
		if _, err := g.auth.Logout(ctx, authorized(&api.LogoutRequest{}, session)); err != nil {
			slog.Warn("Server logout failed", "error", err)
		}
	}

	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()

	return g.sessions.Clear(ctx)
}

// WhoAmI asks the server which session the persisted token carries.
func (g *Gate) WhoAmI(ctx context.Context) (*models.Session, error) {
	session := g.Session()
	if session == nil {
		return nil, ErrUnauthenticated
	}
	resp, err := g.auth.WhoAmI(ctx, authorized(&api.WhoAmIRequest{}, session))
	if err != nil {
		return nil, classify(err)
	}
	return &resp.Msg.Session, nil
}

// authorized wraps msg in a request carrying the session's bearer token.
func authorized[T any](msg *T, session *models.Session) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if session != nil && session.Token != "" {
		req.Header().Set("Authorization", "Bearer "+session.Token)
	}
	return req
}
