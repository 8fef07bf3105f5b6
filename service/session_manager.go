package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-wayout/animation"
	dmn "github.com/beka-birhanu/vinom-wayout/domain"
	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/beka-birhanu/vinom-wayout/traversal"
	"github.com/google/uuid"
)

const (
	reportSaveTimeout  = 2 * time.Second
	defaultReportLimit = 20
	maxReportLimit     = 100
)

var (
	ErrMissingDependency = errors.New("missing session manager dependency")
	ErrShuttingDown      = errors.New("session manager is shutting down")
)

// SessionManager keeps the maze sessions of the HTTP service and their active runs.
type SessionManager struct {
	sessions    map[uuid.UUID]*MazeSession
	runs        map[uuid.UUID]*Run
	mazeFactory func(int) (*maze.Maze, error)
	locker      i.RunLocker
	reports     i.ReportRepo
	timing      animation.Timing
	logger      i.Logger
	stopped     bool
	sync.RWMutex
}

// Config holds the dependencies of a SessionManager.
type Config struct {
	MazeFactory func(int) (*maze.Maze, error) // Builds the maze of a new session from its size; nil generates randomly
	Locker      i.RunLocker
	Reports     i.ReportRepo
	Timing      animation.Timing
	Logger      i.Logger
}

// NewSessionManager creates a SessionManager from c.
func NewSessionManager(c *Config) (*SessionManager, error) {
	if c == nil || c.Locker == nil || c.Reports == nil || c.Logger == nil {
		return nil, ErrMissingDependency
	}

	factory := c.MazeFactory
	if factory == nil {
		factory = func(size int) (*maze.Maze, error) { return maze.New(size, nil) }
	}

	return &SessionManager{
		sessions:    make(map[uuid.UUID]*MazeSession),
		runs:        make(map[uuid.UUID]*Run),
		mazeFactory: factory,
		locker:      c.Locker,
		reports:     c.Reports,
		timing:      c.Timing,
		logger:      c.Logger,
	}, nil
}

// NewSession builds a maze and registers a session for it.
func (g *SessionManager) NewSession(algorithm traversal.Algorithm, size int, start maze.CellPosition) (uuid.UUID, *MazeSession, error) {
	if size < 1 {
		return uuid.Nil, nil, fmt.Errorf("%w: maze size must be at least 1, got %d", maze.ErrInvalidArgument, size)
	}

	m, err := g.mazeFactory(size)
	if err != nil {
		g.logger.Error(fmt.Sprintf("creating maze for a new session: %s", err))
		return uuid.Nil, nil, err
	}

	session, err := NewMazeSession(SessionConfig{
		Algorithm: algorithm,
		Size:      size,
		Start:     start,
		Grid:      m,
		Timing:    g.timing,
	})
	if err != nil {
		return uuid.Nil, nil, err
	}

	g.Lock()
	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}
	g.sessions[sessionID] = session
	g.Unlock()

	g.logger.Info(fmt.Sprintf("created %s session %s: %dx%d maze, start (%d,%d)", algorithm, sessionID, size, size, start.Row, start.Col))
	return sessionID, session, nil
}

// Session returns the session with the given ID.
func (g *SessionManager) Session(id uuid.UUID) (*MazeSession, error) {
	g.RLock()
	defer g.RUnlock()
	session, ok := g.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// StartRun starts a search of the session under its run lock. The run's outcome is recorded
// as a report once it finishes.
func (g *SessionManager) StartRun(ctx context.Context, id uuid.UUID, renderer i.Renderer) (*Run, error) {
	session, err := g.Session(id)
	if err != nil {
		return nil, err
	}

	release, err := g.locker.Acquire(ctx, id)
	if err != nil {
		g.logger.Warning(fmt.Sprintf("acquiring run lock for session %s: %s", id, err))
		return nil, err
	}

	// The finish hook takes the lock too, so the run is registered before it can be forgotten.
	g.Lock()
	if g.stopped {
		g.Unlock()
		release()
		return nil, ErrShuttingDown
	}
	run, err := session.CheckWayOut(ctx, renderer, func(o Outcome) {
		release()
		g.finishRun(id, session, o)
	})
	if err != nil {
		g.Unlock()
		release()
		return nil, err
	}
	g.runs[id] = run
	g.Unlock()

	g.logger.Info(fmt.Sprintf("started %s run for session %s", session.Algorithm(), id))
	return run, nil
}

// finishRun forgets the finished run and stores its report.
func (g *SessionManager) finishRun(id uuid.UUID, session *MazeSession, o Outcome) {
	g.Lock()
	delete(g.runs, id)
	g.Unlock()

	report := &dmn.RunReport{
		ID:          uuid.New(),
		SessionID:   id,
		Algorithm:   session.Algorithm().String(),
		Size:        session.Maze().Size(),
		Start:       session.Start(),
		Found:       o.Result.Found,
		Interrupted: o.Err != nil,
		Visited:     o.Result.Visited,
		StartedAt:   o.StartedAt,
		FinishedAt:  o.FinishedAt,
	}

	ctx, cancel := context.WithTimeout(context.Background(), reportSaveTimeout)
	defer cancel()
	if err := g.reports.Save(ctx, report); err != nil {
		g.logger.Error(fmt.Sprintf("saving report for session %s: %s", id, err))
	}

	g.logger.Info(fmt.Sprintf("session %s finished: %s (visited %d cells in %s)", id, ResultMessage(o.Result, o.Err), o.Result.Visited, report.Duration()))
}

// CancelRun interrupts the active run of the session, if any.
func (g *SessionManager) CancelRun(id uuid.UUID) error {
	g.RLock()
	defer g.RUnlock()
	if _, ok := g.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	if run, ok := g.runs[id]; ok {
		run.Cancel()
	}
	return nil
}

// Remove interrupts any active run of the session and forgets it.
func (g *SessionManager) Remove(id uuid.UUID) error {
	g.Lock()
	defer g.Unlock()
	if _, ok := g.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	if run, ok := g.runs[id]; ok {
		run.Cancel()
	}
	delete(g.sessions, id)
	g.logger.Info(fmt.Sprintf("removed session %s", id))
	return nil
}

// Reports returns the most recent run reports. Limits outside (0, 100] fall back to 20.
func (g *SessionManager) Reports(ctx context.Context, limit int) ([]*dmn.RunReport, error) {
	if limit <= 0 || limit > maxReportLimit {
		limit = defaultReportLimit
	}
	return g.reports.Recent(ctx, limit)
}

// StopAll interrupts every active run and waits for them to finish. Runs started afterwards
// fail with ErrShuttingDown.
func (g *SessionManager) StopAll() {
	g.Lock()
	g.stopped = true
	runs := make([]*Run, 0, len(g.runs))
	for _, run := range g.runs {
		runs = append(runs, run)
	}
	g.Unlock()

	for _, run := range runs {
		run.Cancel()
		<-run.Done()
	}
}
