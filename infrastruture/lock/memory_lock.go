package lock

import (
	"context"
	"sync"

	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/google/uuid"
)

var (
	ErrLocked = i.ErrRunLocked
)

var _ i.RunLocker = &MemoryRunLocker{}

// MemoryRunLocker keeps run locks in process memory. It suits a single service instance.
type MemoryRunLocker struct {
	held map[uuid.UUID]struct{}
	sync.Mutex
}

// NewMemoryRunLocker creates an empty MemoryRunLocker.
func NewMemoryRunLocker() *MemoryRunLocker {
	return &MemoryRunLocker{held: make(map[uuid.UUID]struct{})}
}

// Acquire implements i.RunLocker.
func (m *MemoryRunLocker) Acquire(ctx context.Context, sessionID uuid.UUID) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.Lock()
	defer m.Unlock()
	if _, ok := m.held[sessionID]; ok {
		return nil, ErrLocked
	}
	m.held[sessionID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.Lock()
			delete(m.held, sessionID)
			m.Unlock()
		})
	}, nil
}
