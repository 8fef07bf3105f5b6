package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/beka-birhanu/vinom-wayout/animation"
	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/beka-birhanu/vinom-wayout/traversal"
	"golang.org/x/sync/errgroup"
)

// Session-related errors.
var (
	ErrRunInProgress   = errors.New("a run is already in progress for this maze")
	ErrInterrupted     = errors.New("search interrupted")
	ErrSessionNotFound = errors.New("maze session not found")
	ErrNilRenderer     = errors.New("renderer is nil")
)

// Messages shown to the user once a run is over.
const (
	FoundMessage       = "FOUND SOLUTION"
	NotFoundMessage    = "NO SOLUTION FOR THIS MAZE"
	InterruptedMessage = "SEARCH INTERRUPTED"
)

// SessionConfig is the construction input of a MazeSession.
type SessionConfig struct {
	Algorithm traversal.Algorithm
	Size      int               // Size of the generated maze. Ignored when Grid is set, unless it disagrees.
	Start     maze.CellPosition // Cell the search starts from
	Grid      *maze.Maze        // Optional prebuilt maze used instead of generating one
	Rand      *rand.Rand        // Random source for generation; nil uses a time seed
	Timing    animation.Timing  // Pacing of the animation
}

// MazeSession owns one maze and runs at most one search over it at a time.
type MazeSession struct {
	algorithm traversal.Algorithm
	start     maze.CellPosition
	maze      *maze.Maze
	timing    animation.Timing
	running   atomic.Bool
}

// NewMazeSession validates the configuration and builds the session's maze.
func NewMazeSession(c SessionConfig) (*MazeSession, error) {
	if !c.Algorithm.Valid() {
		return nil, fmt.Errorf("%w: %w", maze.ErrInvalidArgument, traversal.ErrUnknownAlgorithm)
	}

	m := c.Grid
	if m == nil {
		var err error
		if m, err = maze.New(c.Size, c.Rand); err != nil {
			return nil, err
		}
	} else if c.Size != 0 && c.Size != m.Size() {
		return nil, fmt.Errorf("%w: size %d does not match grid size %d", maze.ErrInvalidArgument, c.Size, m.Size())
	}

	if !m.InBound(c.Start.Row, c.Start.Col) {
		return nil, fmt.Errorf("%w: start (%d,%d) is outside a %dx%d maze", maze.ErrInvalidArgument, c.Start.Row, c.Start.Col, m.Size(), m.Size())
	}

	return &MazeSession{
		algorithm: c.Algorithm,
		start:     c.Start,
		maze:      m,
		timing:    c.Timing,
	}, nil
}

// Maze returns the session's maze.
func (s *MazeSession) Maze() *maze.Maze {
	return s.maze
}

// Algorithm returns the search algorithm of the session.
func (s *MazeSession) Algorithm() traversal.Algorithm {
	return s.algorithm
}

// Start returns the start cell of the session.
func (s *MazeSession) Start() maze.CellPosition {
	return s.start
}

// Running reports whether a run is active.
func (s *MazeSession) Running() bool {
	return s.running.Load()
}

// Outcome describes a finished run. Err is non-nil when the run produced no result.
type Outcome struct {
	Result     traversal.Result
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// FinishHook is called on the worker once a run has finished, before Wait returns.
type FinishHook func(Outcome)

// Run is a search running in the background. It behaves as a cancellable future.
type Run struct {
	cancel  context.CancelFunc
	done    chan struct{}
	outcome Outcome
}

// Done is closed once the run has finished.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Cancel interrupts the run. Wait then returns ErrInterrupted.
func (r *Run) Cancel() {
	r.cancel()
}

// Wait blocks until the run finishes and returns its result.
func (r *Run) Wait() (traversal.Result, error) {
	<-r.done
	return r.outcome.Result, r.outcome.Err
}

// Outcome blocks until the run finishes and returns its full outcome.
func (r *Run) Outcome() Outcome {
	<-r.done
	return r.outcome
}

// CheckWayOut starts a search on a dedicated worker and returns immediately.
// Paced visit events are delivered to renderer in order. Starting while another run of the
// same session is active fails with ErrRunInProgress.
func (s *MazeSession) CheckWayOut(ctx context.Context, renderer i.Renderer, hooks ...FinishHook) (*Run, error) {
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(run.done)
		defer s.running.Store(false)
		defer cancel()

		run.outcome.StartedAt = time.Now()
		run.outcome.Result, run.outcome.Err = s.search(runCtx, renderer)
		run.outcome.FinishedAt = time.Now()

		for _, hook := range hooks {
			hook(run.outcome)
		}
	}()

	return run, nil
}

// search runs the traversal and the animation clock side by side, joined by an unbuffered
// channel so that events reach the renderer one at a time.
func (s *MazeSession) search(ctx context.Context, renderer i.Renderer) (traversal.Result, error) {
	events := make(chan traversal.VisitEvent)
	clock := animation.NewClock(s.timing)
	visited := traversal.NewVisitedSet(s.maze.Size())

	var result traversal.Result
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		var err error
		result, err = traversal.Run(gctx, s.algorithm, s.maze, s.start, visited, func(e traversal.VisitEvent) error {
			select {
			case events <- e:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
		return err
	})

	g.Go(func() error {
		return clock.Play(gctx, events, renderer)
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return traversal.Result{}, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		return traversal.Result{}, err
	}
	return result, nil
}

// ResultMessage maps the outcome of a run to the message shown to the user.
func ResultMessage(result traversal.Result, err error) string {
	switch {
	case err != nil:
		return InterruptedMessage
	case result.Found:
		return FoundMessage
	default:
		return NotFoundMessage
	}
}
