// Package reportapi lists the reports of finished runs.
package reportapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	dmn "github.com/beka-birhanu/vinom-wayout/domain"
	"github.com/gin-gonic/gin"
)

const queryTimeout = 2 * time.Second

var (
	ErrMissingDependency = errors.New("missing report controller dependency")
)

// Reports is the source of run reports.
type Reports interface {
	Reports(ctx context.Context, limit int) ([]*dmn.RunReport, error)
}

// Controller serves run reports.
type Controller struct {
	reports Reports
}

// NewController initializes a Controller.
func NewController(r Reports) (*Controller, error) {
	if r == nil {
		return nil, ErrMissingDependency
	}
	return &Controller{reports: r}, nil
}

// RegisterPublic registers public routes.
func (rc *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/reports", rc.recent)
}

// RegisterProtected registers protected routes.
func (rc *Controller) RegisterProtected(route *gin.RouterGroup) {}

// recent lists the latest reports, newest first. The optional limit query bounds the count.
func (rc *Controller) recent(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), queryTimeout)
	defer cancel()
	reports, err := rc.reports.Reports(timeoutCtx, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading reports"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reports": reports})
}
