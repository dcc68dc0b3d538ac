package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/middleware"
)

// AuthService implements the session gate RPCs.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

var _ api.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login checks the credential pair and returns a session with a signed token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	session, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(session)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", session.Username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	session.Token = token

	s.logger.Info("User logged in successfully", "username", session.Username, "role", session.Role)
	return connect.NewResponse(&api.LoginResponse{Session: *session}), nil
}

// Logout is a no-op on the server since tokens are stateless; the client
// discards its persisted session.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	s.logger.Info("Logout request", "username", middleware.GetUsername(ctx))
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// WhoAmI returns the session carried by the caller's token.
func (s *AuthService) WhoAmI(ctx context.Context, req *connect.Request[api.WhoAmIRequest]) (*connect.Response[api.WhoAmIResponse], error) {
	session := middleware.GetSession(ctx)
	if session == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	s.logger.Info("WhoAmI request", "username", session.Username)
	return connect.NewResponse(&api.WhoAmIResponse{Session: *session}), nil
}
