// Package render draws a search as it progresses.
package render

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/beka-birhanu/vinom-wayout/traversal"
)

// Background colors of the cells.
const (
	bgRed   = "\033[41m"
	bgBlue  = "\033[44m"
	bgBlack = "\033[40m"
	bgWhite = "\033[47m"
	bgReset = "\033[0m"

	clearScreen = "\033[H\033[2J"
)

// Glyphs used when colors are off.
const (
	glyphCurrent  = '@'
	glyphVisited  = '*'
	glyphObstacle = '#'
	glyphEmpty    = '.'
)

var (
	ErrNilMaze   = errors.New("maze is nil")
	ErrNilWriter = errors.New("writer is nil")
)

var _ i.Renderer = &Terminal{}

// Terminal redraws the whole maze on every event.
// The current cell is red, visited cells blue, obstacles black and the rest white.
type Terminal struct {
	out     io.Writer
	maze    *maze.Maze
	color   bool
	visited [][]bool
	current *maze.CellPosition
	frames  int
	sync.Mutex
}

// NewTerminal creates a Terminal that writes frames of m to w. With color off, cells are
// drawn as plain glyphs and the screen is not cleared between frames.
func NewTerminal(w io.Writer, m *maze.Maze, color bool) (*Terminal, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	if m == nil {
		return nil, ErrNilMaze
	}

	visited := make([][]bool, m.Size())
	for row := range visited {
		visited[row] = make([]bool, m.Size())
	}

	return &Terminal{
		out:     w,
		maze:    m,
		color:   color,
		visited: visited,
	}, nil
}

// Render applies event to the drawing state and writes one frame.
func (t *Terminal) Render(ctx context.Context, event traversal.VisitEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.Lock()
	defer t.Unlock()

	pos := event.Position
	if !t.maze.InBound(pos.Row, pos.Col) {
		return maze.ErrInvalidArgument
	}

	if event.Visited {
		t.visited[pos.Row][pos.Col] = true
		t.current = &pos
	} else {
		t.visited[pos.Row][pos.Col] = false
		if t.current != nil && *t.current == pos {
			t.current = nil
		}
	}

	t.frames++
	return t.draw()
}

// Frames returns the number of frames written so far.
func (t *Terminal) Frames() int {
	t.Lock()
	defer t.Unlock()
	return t.frames
}

func (t *Terminal) draw() error {
	w := bufio.NewWriter(t.out)
	if t.color {
		w.WriteString(clearScreen)
	}

	size := t.maze.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			t.drawCell(w, maze.CellPosition{Row: row, Col: col})
		}
		w.WriteByte('\n')
	}
	if !t.color {
		w.WriteByte('\n')
	}

	return w.Flush()
}

func (t *Terminal) drawCell(w *bufio.Writer, pos maze.CellPosition) {
	var bg string
	var glyph byte
	switch {
	case t.current != nil && *t.current == pos:
		bg, glyph = bgRed, glyphCurrent
	case t.visited[pos.Row][pos.Col]:
		bg, glyph = bgBlue, glyphVisited
	case t.maze.Kind(pos) == maze.Obstacle:
		bg, glyph = bgBlack, glyphObstacle
	default:
		bg, glyph = bgWhite, glyphEmpty
	}

	if t.color {
		w.WriteString(bg)
		w.WriteString("  ")
		w.WriteString(bgReset)
		return
	}
	w.WriteByte(glyph)
}
