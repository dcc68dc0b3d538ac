package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/middleware"
	"github.com/mmynk/peopleevents/internal/models"
	"github.com/mmynk/peopleevents/internal/storage"
)

// DefaultStoreTimeout bounds each store call when no timeout is configured.
const DefaultStoreTimeout = 10 * time.Second

// authorizeMutation runs the admin guard against the caller's session.
func authorizeMutation(ctx context.Context, procedure string) error {
	session := middleware.GetSession(ctx)
	if err := auth.RequireAdmin(session); err != nil {
		slog.Warn("Mutation rejected", "procedure", procedure, "username", middleware.GetUsername(ctx), "error", err)
		if errors.Is(err, auth.ErrForbidden) {
			return connect.NewError(connect.CodePermissionDenied, err)
		}
		return connect.NewError(connect.CodeUnauthenticated, err)
	}
	return nil
}

// validationError maps record validation failures to InvalidArgument.
func validationError(err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// storeError maps a store failure to the Connect code the client acts on.
func storeError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// storeContext bounds a single store call.
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
