package traversal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Algorithm selects how a run explores the maze.
type Algorithm int

const (
	BruteForce Algorithm = iota // Accepted for compatibility; performs no search and never finds a way out.
	DFS                         // Depth-first search with a LIFO frontier.
	BFS                         // Breadth-first search with a FIFO frontier.
)

// String returns the lower-case name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case BruteForce:
		return "brute-force"
	case DFS:
		return "dfs"
	case BFS:
		return "bfs"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a name such as "bfs", "DFS" or "brute_force" to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brute-force", "brute_force", "bruteforce":
		return BruteForce, nil
	case "dfs":
		return DFS, nil
	case "bfs":
		return BFS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Valid reports whether a is one of the known algorithms.
func (a Algorithm) Valid() bool {
	return a >= BruteForce && a <= BFS
}
