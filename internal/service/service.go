// Package service implements the application's use cases on top of the
// repositories. Services receive the caller's access.Identity explicitly,
// enforce ownership and lifecycle rules, and return *apperr.Error values the
// HTTP layer renders.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/repository"
)

// publishTimeout bounds how long a request waits on the broker, dial
// included.
const publishTimeout = 3 * time.Second

// notFoundOr maps repository.ErrNotFound to a NotFound error with key and
// anything else to an internal error.
func notFoundOr(err error, key string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(key)
	}
	return apperr.Internal(err)
}

// detached returns a context that survives the request being cancelled but
// still expires.
func detached(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), d)
}
