package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-wayout/domain"
)

// ReportRepo defines the interface for run report persistence.
type ReportRepo interface {
	// Save stores a finished run report.
	Save(ctx context.Context, report *dmn.RunReport) error

	// Recent returns up to limit reports, newest first.
	Recent(ctx context.Context, limit int) ([]*dmn.RunReport, error)
}
