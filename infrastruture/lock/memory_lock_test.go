package lock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRunLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("Second acquire of the same session fails", func(t *testing.T) {
		l := NewMemoryRunLocker()
		id := uuid.New()

		release, err := l.Acquire(ctx, id)
		require.NoError(t, err)

		_, err = l.Acquire(ctx, id)
		assert.ErrorIs(t, err, ErrLocked)

		release()
		release2, err := l.Acquire(ctx, id)
		require.NoError(t, err)
		release2()
	})

	t.Run("Sessions are independent", func(t *testing.T) {
		l := NewMemoryRunLocker()
		r1, err := l.Acquire(ctx, uuid.New())
		require.NoError(t, err)
		r2, err := l.Acquire(ctx, uuid.New())
		require.NoError(t, err)
		r1()
		r2()
	})

	t.Run("Release is idempotent", func(t *testing.T) {
		l := NewMemoryRunLocker()
		id := uuid.New()
		release, err := l.Acquire(ctx, id)
		require.NoError(t, err)
		release()

		other, err := l.Acquire(ctx, id)
		require.NoError(t, err)
		release()
		_, err = l.Acquire(ctx, id)
		assert.ErrorIs(t, err, ErrLocked, "stale release must not free a newer holder")
		other()
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewMemoryRunLocker().Acquire(cctx, uuid.New())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
