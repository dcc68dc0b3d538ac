// Package client is the dashboard's side of the system: the session gate that
// logs in and persists the session, the record store client, and the
// Dashboard state object that keeps the held collections in step with the
// server.
package client

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/peopleevents/internal/auth"
)

var (
	// ErrInvalidCredentials is returned by Login for any credential mismatch.
	ErrInvalidCredentials = auth.ErrInvalidCredentials
	// ErrForbidden is returned when a member session attempts a mutation.
	ErrForbidden = auth.ErrForbidden

	ErrUnauthenticated = errors.New("not logged in")
	ErrValidation      = errors.New("record is not valid")
	ErrNotFound        = errors.New("record not found")
	ErrStore           = errors.New("record store request failed")

	// ErrReload means the write went through but refreshing the held
	// collections failed. The write must not be repeated.
	ErrReload = errors.New("saved, but reloading records failed")
)

// classify maps an RPC failure to one of the package's sentinel errors while
// keeping the original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var sentinel error
	switch connect.CodeOf(err) {
	case connect.CodeUnauthenticated:
		sentinel = ErrUnauthenticated
	case connect.CodePermissionDenied:
		sentinel = ErrForbidden
	case connect.CodeInvalidArgument:
		sentinel = ErrValidation
	case connect.CodeNotFound:
		sentinel = ErrNotFound
	default:
		sentinel = ErrStore
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// reloadError reports a failed reload after a committed write. The cause is
// kept as text only so the result does not match ErrStore.
func reloadError(err error) error {
	return fmt.Errorf("%w: %v", ErrReload, err)
}
