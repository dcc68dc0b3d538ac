package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionKey is the context key for storing the authenticated session.
const SessionKey contextKey = "session"

// WithSession returns a copy of ctx carrying the session.
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession extracts the session from the context.
// Returns nil if the request is unauthenticated.
func GetSession(ctx context.Context) *models.Session {
	session, _ := ctx.Value(SessionKey).(*models.Session)
	return session
}

// GetUsername extracts the session's username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	if session := GetSession(ctx); session != nil {
		return session.Username
	}
	return ""
}

// RequireAuth returns an interceptor that validates the bearer token on every
// procedure except the listed public ones, and adds the session to the context.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if open[req.Spec().Procedure] {
				return next(ctx, req)
			}

			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, reject(req, auth.ErrMissingToken)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, reject(req, auth.ErrInvalidToken)
			}

			session, err := jwtManager.Validate(parts[1])
			if err != nil {
				return nil, reject(req, err)
			}

			return next(WithSession(ctx, session), req)
		}
	}
}

// reject logs a request turned away for lack of a valid token. These never
// reach LoggingInterceptor, which runs inside RequireAuth.
func reject(req connect.AnyRequest, err error) error {
	slog.Warn("RPC rejected",
		"procedure", req.Spec().Procedure,
		"code", connect.CodeUnauthenticated,
		"error", err,
		"peer", req.Peer().Addr,
	)
	return connect.NewError(connect.CodeUnauthenticated, err)
}
