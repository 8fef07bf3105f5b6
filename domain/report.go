// Package domain holds the records shared between services and storage.
package domain

import (
	"time"

	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/google/uuid"
)

// RunReport summarises one finished search. It never contains the grid itself.
type RunReport struct {
	ID          uuid.UUID         `bson:"_id" json:"id"`
	SessionID   uuid.UUID         `bson:"sessionId" json:"session_id"`
	Algorithm   string            `bson:"algorithm" json:"algorithm"`
	Size        int               `bson:"size" json:"size"`
	Start       maze.CellPosition `bson:"start" json:"start"`
	Found       bool              `bson:"found" json:"found"`
	Interrupted bool              `bson:"interrupted" json:"interrupted"`
	Visited     int               `bson:"visited" json:"visited"`
	StartedAt   time.Time         `bson:"startedAt" json:"started_at"`
	FinishedAt  time.Time         `bson:"finishedAt" json:"finished_at"`
}

// Duration returns how long the run took.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
