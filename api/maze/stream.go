package mazeapi

import (
	"context"

	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/beka-birhanu/vinom-wayout/traversal"
)

var _ i.Renderer = &streamRenderer{}

// streamRenderer hands paced events to the request goroutine that writes them out.
type streamRenderer struct {
	events chan traversal.VisitEvent
}

func newStreamRenderer() *streamRenderer {
	return &streamRenderer{events: make(chan traversal.VisitEvent)}
}

// Render blocks until the event is taken by the writer or ctx is done.
func (s *streamRenderer) Render(ctx context.Context, event traversal.VisitEvent) error {
	select {
	case s.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
