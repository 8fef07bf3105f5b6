package traversal

import "github.com/beka-birhanu/vinom-wayout/maze"

// VisitedSet records the cells explored during one run.
// Entries only ever go from unvisited to visited.
type VisitedSet struct {
	cells [][]bool
	count int
}

// NewVisitedSet returns an empty set for a size x size maze.
func NewVisitedSet(size int) *VisitedSet {
	cells := make([][]bool, size)
	for i := range cells {
		cells[i] = make([]bool, size)
	}
	return &VisitedSet{cells: cells}
}

// IsVisited reports whether pos has been visited.
func (v *VisitedSet) IsVisited(pos maze.CellPosition) bool {
	return v.cells[pos.Row][pos.Col]
}

// Visit marks pos as visited and reports whether it was newly marked.
func (v *VisitedSet) Visit(pos maze.CellPosition) bool {
	if v.cells[pos.Row][pos.Col] {
		return false
	}
	v.cells[pos.Row][pos.Col] = true
	v.count++
	return true
}

// Size returns the side length of the maze the set was built for.
func (v *VisitedSet) Size() int {
	return len(v.cells)
}

// Count returns the number of visited cells.
func (v *VisitedSet) Count() int {
	return v.count
}
