package traversal

import "github.com/beka-birhanu/vinom-wayout/maze"

// VisitEvent is an observable change of a cell's visited state.
// Visited is false only for unvisit events, which the search algorithms never emit.
type VisitEvent struct {
	Position maze.CellPosition
	Visited  bool
}

// Result is the outcome of a completed run.
type Result struct {
	Found   bool // Found reports whether the exit was reached.
	Visited int  // Visited is the number of distinct cells visited.
}

// Emitter receives visit events in order. A non-nil error aborts the run.
type Emitter func(VisitEvent) error
