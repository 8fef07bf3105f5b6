package i

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrRunLocked is returned by Acquire when another run holds the lock.
var ErrRunLocked = errors.New("run lock is held by another run")

// RunLocker guards a maze session so that only one run is active for it at a time.
type RunLocker interface {
	// Acquire takes the run lock of the session. The returned function releases it.
	// Acquire fails immediately with ErrRunLocked if another run holds the lock. Other errors
	// mean the lock state could not be determined.
	Acquire(ctx context.Context, sessionID uuid.UUID) (release func(), err error)
}
