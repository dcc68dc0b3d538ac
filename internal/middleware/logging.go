package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs one line per RPC with the caller's username and role.
// Install it inside RequireAuth so the session is known; requests RequireAuth
// turns away are logged there instead.
//
// Failures the caller can fix (bad credentials, a member trying to write, a
// missing record) log at WARN; everything else that fails logs at ERROR.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if session := GetSession(ctx); session != nil {
				attrs = append(attrs, "username", session.Username, "role", session.Role)
			}

			if err == nil {
				slog.Info("RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code, "error", err)
			if callerFault(code) {
				slog.Warn("RPC rejected", attrs...)
			} else {
				slog.Error("RPC failed", attrs...)
			}
			return resp, err
		}
	}
}

func callerFault(code connect.Code) bool {
	switch code {
	case connect.CodeUnauthenticated,
		connect.CodePermissionDenied,
		connect.CodeInvalidArgument,
		connect.CodeNotFound,
		connect.CodeCanceled:
		return true
	}
	return false
}
