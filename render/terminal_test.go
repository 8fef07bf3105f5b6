package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/beka-birhanu/vinom-wayout/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastFrame(out string) string {
	frames := strings.Split(strings.TrimSuffix(out, "\n\n"), "\n\n")
	return frames[len(frames)-1] + "\n"
}

func visit(row, col int) traversal.VisitEvent {
	return traversal.VisitEvent{Position: maze.CellPosition{Row: row, Col: col}, Visited: true}
}

func TestTerminal(t *testing.T) {
	m, err := maze.FromRows([]string{"..", "#."})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Plain frames mark current and visited cells", func(t *testing.T) {
		var buf bytes.Buffer
		term, err := NewTerminal(&buf, m, false)
		require.NoError(t, err)

		require.NoError(t, term.Render(ctx, visit(0, 0)))
		assert.Equal(t, "@.\n#.\n", lastFrame(buf.String()))

		require.NoError(t, term.Render(ctx, visit(0, 1)))
		assert.Equal(t, "*@\n#.\n", lastFrame(buf.String()))
		assert.Equal(t, 2, term.Frames())
	})

	t.Run("Unvisit clears the cell", func(t *testing.T) {
		var buf bytes.Buffer
		term, err := NewTerminal(&buf, m, false)
		require.NoError(t, err)

		require.NoError(t, term.Render(ctx, visit(0, 0)))
		require.NoError(t, term.Render(ctx, visit(0, 1)))
		require.NoError(t, term.Render(ctx, traversal.VisitEvent{Position: maze.CellPosition{Row: 0, Col: 1}}))
		assert.Equal(t, "*.\n#.\n", lastFrame(buf.String()))
	})

	t.Run("Colored frames clear the screen", func(t *testing.T) {
		var buf bytes.Buffer
		term, err := NewTerminal(&buf, m, true)
		require.NoError(t, err)

		require.NoError(t, term.Render(ctx, visit(1, 1)))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, clearScreen))
		assert.Contains(t, out, bgRed)
		assert.Contains(t, out, bgBlack)
		assert.Contains(t, out, bgWhite)
		assert.NotContains(t, out, bgBlue)
	})

	t.Run("Out of bounds event", func(t *testing.T) {
		term, err := NewTerminal(&bytes.Buffer{}, m, false)
		require.NoError(t, err)
		assert.ErrorIs(t, term.Render(ctx, visit(2, 0)), maze.ErrInvalidArgument)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		term, err := NewTerminal(&bytes.Buffer{}, m, false)
		require.NoError(t, err)
		assert.ErrorIs(t, term.Render(cctx, visit(0, 0)), context.Canceled)
		assert.Zero(t, term.Frames())
	})

	t.Run("Missing dependencies", func(t *testing.T) {
		_, err := NewTerminal(nil, m, false)
		assert.ErrorIs(t, err, ErrNilWriter)
		_, err = NewTerminal(&bytes.Buffer{}, nil, false)
		assert.ErrorIs(t, err, ErrNilMaze)
	})
}
