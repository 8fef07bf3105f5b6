/*
Package maze provides the square obstacle grid searched for a way out.

A Maze is generated once from a size and a random source and is never mutated afterwards.
The top-left cell is the usual start and the bottom-right cell is the exit; both are always
empty regardless of what the random pass placed there.

The package also resolves the orthogonal neighbors of a cell, filtering out positions that
fall outside the grid or onto an obstacle, and renders the grid as ASCII.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	// reservedSpan is the side of the top-left square that never holds obstacles.
	reservedSpan = 2

	obstacleDraw    = 8 // draws are taken uniformly from [0, obstacleDraw)
	obstacleDivisor = 7 // a draw divisible by obstacleDivisor places an obstacle
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Maze is a square grid of empty and obstacle cells.
type Maze struct {
	size int          // Number of rows and columns
	grid [][]CellKind // 2D grid of cell kinds, indexed [row][col]
}

// New generates a maze of the given size using rng for obstacle placement.
// A nil rng is replaced with a time-seeded source.
func New(size int, rng *rand.Rand) (*Maze, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: maze size must be at least 1, got %d", ErrInvalidArgument, size)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	grid := make([][]CellKind, size)
	for i := range grid {
		grid[i] = make([]CellKind, size)
		for j := range grid[i] {
			if i >= reservedSpan || j >= reservedSpan {
				grid[i][j] = randomKind(rng)
			} else {
				grid[i][j] = Empty
			}
		}
	}

	m := &Maze{size: size, grid: grid}
	m.openCorners()
	return m, nil
}

// FromCells builds a maze from explicit cells. The grid must be square and non-empty.
// The start and exit corners are forced empty as in generated mazes.
func FromCells(cells [][]CellKind) (*Maze, error) {
	size := len(cells)
	if size == 0 {
		return nil, fmt.Errorf("%w: maze must have at least one row", ErrInvalidArgument)
	}

	grid := make([][]CellKind, size)
	for i, row := range cells {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidArgument, i, len(row), size)
		}
		grid[i] = append([]CellKind(nil), row...)
	}

	m := &Maze{size: size, grid: grid}
	m.openCorners()
	return m, nil
}

// FromRows builds a maze from rows in the format produced by Rows.
func FromRows(rows []string) (*Maze, error) {
	cells := make([][]CellKind, len(rows))
	for i, row := range rows {
		cells[i] = make([]CellKind, 0, len(row))
		for _, r := range row {
			switch r {
			case '.':
				cells[i] = append(cells[i], Empty)
			case '#':
				cells[i] = append(cells[i], Obstacle)
			default:
				return nil, fmt.Errorf("%w: unknown cell symbol %q in row %d", ErrInvalidArgument, r, i)
			}
		}
	}
	return FromCells(cells)
}

// randomKind draws the kind of a cell outside the reserved region.
func randomKind(rng *rand.Rand) CellKind {
	if rng.Intn(obstacleDraw)%obstacleDivisor == 0 {
		return Obstacle
	}
	return Empty
}

// openCorners clears the start and exit cells.
func (m *Maze) openCorners() {
	m.grid[0][0] = Empty
	m.grid[m.size-1][m.size-1] = Empty
}

// Size returns the number of rows (and columns) of the maze.
func (m *Maze) Size() int {
	return m.size
}

// Exit returns the terminal cell of the maze.
func (m *Maze) Exit() CellPosition {
	return CellPosition{Row: m.size - 1, Col: m.size - 1}
}

// InBound reports whether the given row and column lie inside the maze.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.size && col >= 0 && col < m.size
}

// Kind returns the kind of the cell at pos. Positions outside the maze report Obstacle.
func (m *Maze) Kind(pos CellPosition) CellKind {
	if !m.InBound(pos.Row, pos.Col) {
		return Obstacle
	}
	return m.grid[pos.Row][pos.Col]
}

// IsOpen reports whether pos is inside the maze and not an obstacle.
func (m *Maze) IsOpen(pos CellPosition) bool {
	return m.Kind(pos) == Empty
}

// Neighbors returns the open orthogonal neighbors of pos in the order right, left, up, down.
func (m *Maze) Neighbors(pos CellPosition) []CellPosition {
	candidates := [4]CellPosition{pos.right(), pos.left(), pos.up(), pos.down()}
	result := make([]CellPosition, 0, len(candidates))
	for _, c := range candidates {
		if m.IsOpen(c) {
			result = append(result, c)
		}
	}
	return result
}

// Cells returns a copy of the grid.
func (m *Maze) Cells() [][]CellKind {
	cells := make([][]CellKind, m.size)
	for i, row := range m.grid {
		cells[i] = append([]CellKind(nil), row...)
	}
	return cells
}

// Rows returns the grid as one string per row, '#' for obstacles and '.' for empty cells.
func (m *Maze) Rows() []string {
	rows := make([]string, m.size)
	for i, row := range m.grid {
		var b strings.Builder
		for _, kind := range row {
			b.WriteString(kind.String())
		}
		rows[i] = b.String()
	}
	return rows
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder
	boundary := "+" + strings.Repeat("---", m.size) + "+\n"

	output.WriteString(boundary)
	for _, row := range m.grid {
		output.WriteString("|")
		for _, kind := range row {
			if kind == Obstacle {
				output.WriteString("###")
			} else {
				output.WriteString("   ")
			}
		}
		output.WriteString("|\n")
	}
	output.WriteString(boundary)

	return output.String()
}
