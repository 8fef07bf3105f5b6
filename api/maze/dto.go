// Package mazeapi provides structures for creating maze sessions and streaming their runs.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-wayout/maze"
)

// CreateMazeRequest represents a request to create a new maze session.
type CreateMazeRequest struct {
	Algorithm string `json:"algorithm"`
	Size      int    `json:"size" binding:"required,min=1,max=200"`
	StartRow  int    `json:"start_row" binding:"min=0"`
	StartCol  int    `json:"start_col" binding:"min=0"`
}

// MazeResponse describes a maze session.
type MazeResponse struct {
	ID        string            `json:"id"`
	Algorithm string            `json:"algorithm"`
	Size      int               `json:"size"`
	Start     maze.CellPosition `json:"start"`
	Exit      maze.CellPosition `json:"exit"`
	Rows      []string          `json:"rows"`
	Running   bool              `json:"running"`
}

// CreateMazeResponse is returned once a session is created. Token authorizes the
// session's protected routes.
type CreateMazeResponse struct {
	MazeResponse
	Token string `json:"token"`
}

// VisitMessage is the payload of a "visit" event.
type VisitMessage struct {
	Row     int  `json:"row"`
	Column  int  `json:"column"`
	Visited bool `json:"visited"`
}

// ResultMessage is the payload of the final "result" event.
type ResultMessage struct {
	Found       bool   `json:"found"`
	Visited     int    `json:"visited"`
	Message     string `json:"message"`
	Interrupted bool   `json:"interrupted"`
}
