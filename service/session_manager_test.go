package service

import (
	"context"
	"io"
	"testing"

	"github.com/beka-birhanu/vinom-wayout/animation"
	dmn "github.com/beka-birhanu/vinom-wayout/domain"
	"github.com/beka-birhanu/vinom-wayout/infrastruture/lock"
	logger "github.com/beka-birhanu/vinom-wayout/infrastruture/log"
	"github.com/beka-birhanu/vinom-wayout/infrastruture/repo"
	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/beka-birhanu/vinom-wayout/traversal"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitRecorder struct {
	limits []int
}

func (l *limitRecorder) Save(context.Context, *dmn.RunReport) error { return nil }

func (l *limitRecorder) Recent(_ context.Context, limit int) ([]*dmn.RunReport, error) {
	l.limits = append(l.limits, limit)
	return nil, nil
}

func openMaze(size int) (*maze.Maze, error) {
	cells := make([][]maze.CellKind, size)
	for r := range cells {
		cells[r] = make([]maze.CellKind, size)
	}
	return maze.FromCells(cells)
}

func newManager(t *testing.T) (*SessionManager, *repo.MemoryReportRepo) {
	t.Helper()
	lg, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)

	reports := repo.NewMemoryReportRepo(0)
	manager, err := NewSessionManager(&Config{
		MazeFactory: openMaze,
		Locker:      lock.NewMemoryRunLocker(),
		Reports:     reports,
		Timing:      animation.Timing{},
		Logger:      lg,
	})
	require.NoError(t, err)
	return manager, reports
}

func TestNewSessionManager(t *testing.T) {
	_, err := NewSessionManager(nil)
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewSessionManager(&Config{Locker: lock.NewMemoryRunLocker()})
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestSessionManagerSessions(t *testing.T) {
	manager, _ := newManager(t)

	t.Run("Create and look up", func(t *testing.T) {
		id, session, err := manager.NewSession(traversal.DFS, 4, maze.CellPosition{Row: 1, Col: 1})
		require.NoError(t, err)

		found, err := manager.Session(id)
		require.NoError(t, err)
		assert.Same(t, session, found)
		assert.Equal(t, 4, found.Maze().Size())
		assert.Equal(t, maze.CellPosition{Row: 1, Col: 1}, found.Start())
	})

	t.Run("Invalid size", func(t *testing.T) {
		_, _, err := manager.NewSession(traversal.BFS, 0, maze.CellPosition{})
		assert.ErrorIs(t, err, maze.ErrInvalidArgument)
	})

	t.Run("Unknown session", func(t *testing.T) {
		_, err := manager.Session(uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, manager.CancelRun(uuid.New()), ErrSessionNotFound)
		assert.ErrorIs(t, manager.Remove(uuid.New()), ErrSessionNotFound)
		_, err = manager.StartRun(context.Background(), uuid.New(), &recordingRenderer{})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestSessionManagerRuns(t *testing.T) {
	ctx := context.Background()

	t.Run("Finished run is reported", func(t *testing.T) {
		manager, _ := newManager(t)
		id, _, err := manager.NewSession(traversal.BFS, 3, maze.CellPosition{})
		require.NoError(t, err)

		run, err := manager.StartRun(ctx, id, &recordingRenderer{})
		require.NoError(t, err)
		result, err := run.Wait()
		require.NoError(t, err)
		assert.True(t, result.Found)

		reports, err := manager.Reports(ctx, 0)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, id, reports[0].SessionID)
		assert.Equal(t, "bfs", reports[0].Algorithm)
		assert.True(t, reports[0].Found)
		assert.False(t, reports[0].Interrupted)
		assert.Equal(t, 9, reports[0].Visited)
	})

	t.Run("Second run is refused while one is active", func(t *testing.T) {
		manager, _ := newManager(t)
		id, _, err := manager.NewSession(traversal.DFS, 3, maze.CellPosition{})
		require.NoError(t, err)

		blocker := newBlockingRenderer()
		run, err := manager.StartRun(ctx, id, blocker)
		require.NoError(t, err)
		<-blocker.started

		_, err = manager.StartRun(ctx, id, &recordingRenderer{})
		assert.ErrorIs(t, err, lock.ErrLocked)

		require.NoError(t, manager.CancelRun(id))
		_, err = run.Wait()
		assert.ErrorIs(t, err, ErrInterrupted)

		next, err := manager.StartRun(ctx, id, &recordingRenderer{})
		require.NoError(t, err)
		_, err = next.Wait()
		assert.NoError(t, err)

		reports, err := manager.Reports(ctx, 10)
		require.NoError(t, err)
		require.Len(t, reports, 2)
		interrupted := 0
		for _, r := range reports {
			if r.Interrupted {
				interrupted++
			}
		}
		assert.Equal(t, 1, interrupted)
	})

	t.Run("Remove interrupts the active run", func(t *testing.T) {
		manager, _ := newManager(t)
		id, _, err := manager.NewSession(traversal.BFS, 3, maze.CellPosition{})
		require.NoError(t, err)

		blocker := newBlockingRenderer()
		run, err := manager.StartRun(ctx, id, blocker)
		require.NoError(t, err)
		<-blocker.started

		require.NoError(t, manager.Remove(id))
		_, err = run.Wait()
		assert.ErrorIs(t, err, ErrInterrupted)
		_, err = manager.Session(id)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("StopAll waits for every run", func(t *testing.T) {
		manager, _ := newManager(t)
		var runs []*Run
		for i := 0; i < 3; i++ {
			id, _, err := manager.NewSession(traversal.DFS, 3, maze.CellPosition{})
			require.NoError(t, err)
			blocker := newBlockingRenderer()
			run, err := manager.StartRun(ctx, id, blocker)
			require.NoError(t, err)
			<-blocker.started
			runs = append(runs, run)
		}

		manager.StopAll()
		for _, run := range runs {
			select {
			case <-run.Done():
			default:
				t.Fatal("run still active after StopAll")
			}
		}

		id, _, err := manager.NewSession(traversal.BFS, 3, maze.CellPosition{})
		require.NoError(t, err)
		_, err = manager.StartRun(ctx, id, &recordingRenderer{})
		assert.ErrorIs(t, err, ErrShuttingDown)
	})
}

func TestSessionManagerReportLimit(t *testing.T) {
	lg, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)
	recorder := &limitRecorder{}
	manager, err := NewSessionManager(&Config{
		Locker:  lock.NewMemoryRunLocker(),
		Reports: recorder,
		Logger:  lg,
	})
	require.NoError(t, err)

	for _, limit := range []int{-1, 0, 5, 100, 101} {
		_, err := manager.Reports(context.Background(), limit)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{20, 20, 5, 100, 20}, recorder.limits)
}
