// Package mazeapi handles maze sessions and streams their runs as server-sent events.
package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-wayout/api/identity"
	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/beka-birhanu/vinom-wayout/service"
	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/beka-birhanu/vinom-wayout/traversal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrMissingDependency = errors.New("missing maze controller dependency")
)

// Sessions is the part of the session manager the controller relies on.
type Sessions interface {
	NewSession(algorithm traversal.Algorithm, size int, start maze.CellPosition) (uuid.UUID, *service.MazeSession, error)
	Session(id uuid.UUID) (*service.MazeSession, error)
	StartRun(ctx context.Context, id uuid.UUID, renderer i.Renderer) (*service.Run, error)
	CancelRun(id uuid.UUID) error
	Remove(id uuid.UUID) error
}

// Controller exposes maze sessions over HTTP.
type Controller struct {
	sessions         Sessions
	tokenizer        i.Tokenizer
	tokenTTL         time.Duration
	defaultAlgorithm traversal.Algorithm
}

// Config holds the dependencies of a Controller.
type Config struct {
	Sessions         Sessions
	Tokenizer        i.Tokenizer
	TokenTTL         time.Duration       // Lifetime of issued session tokens
	DefaultAlgorithm traversal.Algorithm // Used when a request names no algorithm
}

// NewController initializes a Controller.
func NewController(c Config) (*Controller, error) {
	if c.Sessions == nil || c.Tokenizer == nil {
		return nil, ErrMissingDependency
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = time.Hour
	}
	return &Controller{
		sessions:         c.Sessions,
		tokenizer:        c.Tokenizer,
		tokenTTL:         c.TokenTTL,
		defaultAlgorithm: c.DefaultAlgorithm,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/mazes", mc.create)
}

// RegisterProtected registers protected routes.
func (mc *Controller) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", mc.info)
		mazes.DELETE("/:ID", mc.remove)
		mazes.GET("/:ID/run", mc.run)
		mazes.DELETE("/:ID/run", mc.cancelRun)
	}
}

// create builds a maze session and issues the token that grants access to it.
func (mc *Controller) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	algorithm := mc.defaultAlgorithm
	if request.Algorithm != "" {
		var err error
		if algorithm, err = traversal.ParseAlgorithm(request.Algorithm); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	start := maze.CellPosition{Row: request.StartRow, Col: request.StartCol}
	id, session, err := mc.sessions.NewSession(algorithm, request.Size, start)
	if err != nil {
		if errors.Is(err, maze.ErrInvalidArgument) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating maze"})
		return
	}

	token, err := mc.tokenizer.Generate(map[string]interface{}{identity.SessionClaim: id.String()}, mc.tokenTTL)
	if err != nil {
		_ = mc.sessions.Remove(id)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing token"})
		return
	}

	ctx.JSON(http.StatusCreated, &CreateMazeResponse{
		MazeResponse: mazeResponse(id, session),
		Token:        token,
	})
}

// info describes the session.
func (mc *Controller) info(ctx *gin.Context) {
	id, ok := mc.authorizedID(ctx)
	if !ok {
		return
	}

	session, err := mc.sessions.Session(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
		return
	}
	ctx.JSON(http.StatusOK, mazeResponse(id, session))
}

// remove forgets the session, interrupting its run.
func (mc *Controller) remove(ctx *gin.Context) {
	id, ok := mc.authorizedID(ctx)
	if !ok {
		return
	}

	if err := mc.sessions.Remove(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// cancelRun interrupts the session's active run.
func (mc *Controller) cancelRun(ctx *gin.Context) {
	id, ok := mc.authorizedID(ctx)
	if !ok {
		return
	}

	if err := mc.sessions.CancelRun(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
		return
	}
	ctx.Status(http.StatusAccepted)
}

// run starts a search and streams its paced visits as "visit" events followed by a single
// "result" event. Closing the connection interrupts the run.
func (mc *Controller) run(ctx *gin.Context) {
	id, ok := mc.authorizedID(ctx)
	if !ok {
		return
	}

	reqCtx := ctx.Request.Context()
	renderer := newStreamRenderer()
	run, err := mc.sessions.StartRun(reqCtx, id, renderer)
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
		return
	case errors.Is(err, service.ErrRunInProgress), errors.Is(err, i.ErrRunLocked):
		ctx.JSON(http.StatusConflict, gin.H{"error": service.ErrRunInProgress.Error()})
		return
	case errors.Is(err, service.ErrShuttingDown):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "run could not be started"})
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Status(http.StatusOK)

	for {
		select {
		case event := <-renderer.events:
			ctx.SSEvent("visit", VisitMessage{
				Row:     event.Position.Row,
				Column:  event.Position.Col,
				Visited: event.Visited,
			})
			ctx.Writer.Flush()
		case <-run.Done():
			outcome := run.Outcome()
			ctx.SSEvent("result", ResultMessage{
				Found:       outcome.Result.Found,
				Visited:     outcome.Result.Visited,
				Message:     service.ResultMessage(outcome.Result, outcome.Err),
				Interrupted: outcome.Err != nil,
			})
			ctx.Writer.Flush()
			return
		case <-reqCtx.Done():
			run.Cancel()
			<-run.Done()
			return
		}
	}
}

// authorizedID parses the :ID param and checks it against the token's session claim.
// It writes the error response itself.
func (mc *Controller) authorizedID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}

	claimed, ok := identity.SessionID(ctx)
	if !ok || claimed != id.String() {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "token does not grant access to this maze"})
		return uuid.Nil, false
	}
	return id, true
}

func mazeResponse(id uuid.UUID, session *service.MazeSession) MazeResponse {
	m := session.Maze()
	return MazeResponse{
		ID:        id.String(),
		Algorithm: session.Algorithm().String(),
		Size:      m.Size(),
		Start:     session.Start(),
		Exit:      m.Exit(),
		Rows:      m.Rows(),
		Running:   session.Running(),
	}
}
