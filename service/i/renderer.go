package i

import (
	"context"

	"github.com/beka-birhanu/vinom-wayout/traversal"
)

// Renderer consumes paced visit events, one at a time and in emission order.
type Renderer interface {
	// Render draws a single event. A non-nil error aborts the run.
	Render(ctx context.Context, event traversal.VisitEvent) error
}
