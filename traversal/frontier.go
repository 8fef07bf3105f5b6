package traversal

import "github.com/beka-birhanu/vinom-wayout/maze"

// Frontier holds discovered positions that have not been processed yet.
type Frontier interface {
	Push(maze.CellPosition)
	// Pop removes the next position. It must not be called on an empty frontier.
	Pop() maze.CellPosition
	Len() int
}

// NewFrontier returns the frontier discipline of the algorithm: a queue for BFS and a stack otherwise.
func NewFrontier(a Algorithm) Frontier {
	if a == BFS {
		return &queue{}
	}
	return &stack{}
}

// queue is a FIFO frontier.
type queue struct {
	items []maze.CellPosition
}

func (q *queue) Push(pos maze.CellPosition) {
	q.items = append(q.items, pos)
}

func (q *queue) Pop() maze.CellPosition {
	head := q.items[0]
	q.items = q.items[1:]
	return head
}

func (q *queue) Len() int {
	return len(q.items)
}

// stack is a LIFO frontier.
type stack struct {
	items []maze.CellPosition
}

func (s *stack) Push(pos maze.CellPosition) {
	s.items = append(s.items, pos)
}

// Pop removes and returns the last element of the stack.
func (s *stack) Pop() maze.CellPosition {
	lastIndex := len(s.items) - 1
	popped := s.items[lastIndex]
	s.items = s.items[:lastIndex]
	return popped
}

func (s *stack) Len() int {
	return len(s.items)
}
