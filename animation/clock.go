/*
Package animation paces visit events for a renderer.

The pauses between events are the animation itself: a Clock blocks its caller for the
configured delays before handing each event to the renderer. After an unvisit event the
clock enters a backtracking state, and the next visit is preceded by a longer pause.
*/
package animation

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/beka-birhanu/vinom-wayout/traversal"
)

const (
	DefaultStepDelay                = 100 * time.Millisecond
	DefaultBacktrackDelay           = 400 * time.Millisecond
	DefaultBacktrackPauseMultiplier = 5

	// unvisitDivisor shortens the step delay for unvisit events.
	unvisitDivisor = 4
)

// Timing configures the pauses of a Clock.
type Timing struct {
	StepDelay                time.Duration // Pause before each visited cell is shown.
	BacktrackDelay           time.Duration // Pause that follows an unvisited cell.
	BacktrackPauseMultiplier int           // StepDelay multiplier for the first visit after backtracking.
}

// DefaultTiming returns the timing used when nothing is configured.
func DefaultTiming() Timing {
	return Timing{
		StepDelay:                DefaultStepDelay,
		BacktrackDelay:           DefaultBacktrackDelay,
		BacktrackPauseMultiplier: DefaultBacktrackPauseMultiplier,
	}
}

// Clock turns visit events into timed emissions. A Clock belongs to a single run.
type Clock struct {
	timing       Timing
	backtracking bool
	sleep        func(context.Context, time.Duration) error
}

// NewClock creates a Clock with the given timing. Negative values are treated as zero.
func NewClock(t Timing) *Clock {
	t.StepDelay = max(t.StepDelay, 0)
	t.BacktrackDelay = max(t.BacktrackDelay, 0)
	t.BacktrackPauseMultiplier = max(t.BacktrackPauseMultiplier, 0)
	return &Clock{timing: t, sleep: sleepContext}
}

// Backtracking reports whether the last paced event was an unvisit not yet followed by a visit.
func (c *Clock) Backtracking() bool {
	return c.backtracking
}

// Pace blocks for the delays owed before event may be shown.
func (c *Clock) Pace(ctx context.Context, event traversal.VisitEvent) error {
	if event.Visited {
		if c.backtracking {
			if err := c.sleep(ctx, c.timing.StepDelay*time.Duration(c.timing.BacktrackPauseMultiplier)); err != nil {
				return err
			}
			c.backtracking = false
		}
		return c.sleep(ctx, c.timing.StepDelay)
	}

	if err := c.sleep(ctx, c.timing.StepDelay/unvisitDivisor); err != nil {
		return err
	}
	c.backtracking = true
	return c.sleep(ctx, c.timing.BacktrackDelay)
}

// Play paces every event received on events and passes it to r, in order, until events is
// closed. It returns the first error from pacing or rendering.
func (c *Clock) Play(ctx context.Context, events <-chan traversal.VisitEvent, r i.Renderer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := c.Pace(ctx, event); err != nil {
				return err
			}
			if err := r.Render(ctx, event); err != nil {
				return err
			}
		}
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
