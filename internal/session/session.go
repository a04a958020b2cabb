// Package session keeps the server-side state behind the session cookie.
//
// A session is created at login and holds the identity fields every request
// needs (user id, admin flag, display name). The browser only ever sees an
// opaque session id, wrapped in a signed token by Codec. Stores are either
// Redis backed (shared across processes) or in-memory for single-process
// development and tests.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/course-enrollment/internal/utils"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// IDBytes is the number of random bytes in a session id.
const IDBytes = 32

// Data is the state stored for a logged-in user.
type Data struct {
	UserID    uint64
	IsAdmin   bool
	FullName  string
	CreatedAt time.Time
}

// Store persists sessions keyed by an opaque id.
type Store interface {
	// Create stores d under a fresh id that expires after ttl.
	Create(ctx context.Context, d Data, ttl time.Duration) (string, error)
	// Get returns the session for id or ErrNotFound.
	Get(ctx context.Context, id string) (Data, error)
	// Destroy removes id. Destroying an unknown id is not an error.
	Destroy(ctx context.Context, id string) error
}

func newID() (string, error) {
	return utils.RandomHex(IDBytes)
}
