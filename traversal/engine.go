/*
Package traversal searches a maze for a way from a start cell to the exit.

BFS and DFS share one loop and differ only in the frontier discipline. A position may be
pushed onto the frontier several times; the visited check at pop time discards repeats, so
each cell is visited at most once and every run terminates.

Each visit is reported through an Emitter in the order it happens.
*/
package traversal

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-wayout/maze"
)

// Run searches m from start using the given algorithm and visited set.
// Visits are passed to emit, which may be nil. The run stops early with an error when ctx is
// done or emit fails; in that case no Result is produced.
func Run(ctx context.Context, a Algorithm, m *maze.Maze, start maze.CellPosition, visited *VisitedSet, emit Emitter) (Result, error) {
	if !a.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	if !m.InBound(start.Row, start.Col) {
		return Result{}, fmt.Errorf("%w: start %v is outside the maze", maze.ErrInvalidArgument, start)
	}
	if visited == nil {
		return Result{}, fmt.Errorf("%w: visited set is nil", maze.ErrInvalidArgument)
	}
	if visited.Size() != m.Size() {
		return Result{}, fmt.Errorf("%w: visited set is sized %d for a %dx%d maze", maze.ErrInvalidArgument, visited.Size(), m.Size(), m.Size())
	}
	if a == BruteForce {
		return Result{}, nil
	}

	exit := m.Exit()
	frontier := NewFrontier(a)
	frontier.Push(start)

	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		current := frontier.Pop()
		if !visited.Visit(current) {
			continue
		}

		if emit != nil {
			if err := emit(VisitEvent{Position: current, Visited: true}); err != nil {
				return Result{}, err
			}
		}

		if current == exit {
			return Result{Found: true, Visited: visited.Count()}, nil
		}

		for _, nbr := range m.Neighbors(current) {
			if !visited.IsVisited(nbr) {
				frontier.Push(nbr)
			}
		}
	}

	return Result{Found: false, Visited: visited.Count()}, nil
}
