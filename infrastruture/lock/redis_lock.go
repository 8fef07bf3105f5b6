package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockPrefix = "wayout"
	runLockKeyFmt     = "%s:session_%s:run_lock"
	unlockTimeout     = time.Second
)

var _ i.RunLocker = &RedisRunLocker{}

// RedisRunLocker shares run locks between service instances through Redis.
type RedisRunLocker struct {
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
	logger i.Logger
}

// NewRedisRunLocker creates a RedisRunLocker. Locks expire after ttl even if never released.
func NewRedisRunLocker(client *redis.Client, ttl time.Duration, logger i.Logger) (*RedisRunLocker, error) {
	if client == nil || logger == nil {
		return nil, errors.New("redis run locker needs a client and a logger")
	}

	pool := goredis.NewPool(client)
	return &RedisRunLocker{
		locker: redsync.New(pool),
		prefix: defaultLockPrefix,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Acquire implements i.RunLocker. It makes a single attempt so a busy session fails fast.
func (r *RedisRunLocker) Acquire(ctx context.Context, sessionID uuid.UUID) (func(), error) {
	mutex := r.locker.NewMutex(r.key(sessionID), redsync.WithExpiry(r.ttl), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, lockError(err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
		defer cancel()

		ok, err := mutex.UnlockContext(ctx)
		if err != nil {
			r.logger.Error(fmt.Sprintf("releasing run lock of session %s: %s", sessionID, err))
			return
		}
		if !ok {
			r.logger.Warning(fmt.Sprintf("run lock of session %s had already expired", sessionID))
		}
	}, nil
}

// lockError reports a lock held elsewhere as ErrLocked and passes any other failure through.
func lockError(err error) error {
	var taken *redsync.ErrTaken
	var nodeTaken *redsync.ErrNodeTaken
	if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) || errors.As(err, &nodeTaken) {
		return fmt.Errorf("%w: %w", ErrLocked, err)
	}
	return fmt.Errorf("acquiring run lock: %w", err)
}

func (r *RedisRunLocker) key(sessionID uuid.UUID) string {
	return fmt.Sprintf(runLockKeyFmt, r.prefix, sessionID)
}
