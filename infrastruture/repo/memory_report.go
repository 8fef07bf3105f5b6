package repo

import (
	"context"
	"sort"
	"sync"

	dmn "github.com/beka-birhanu/vinom-wayout/domain"
	"github.com/beka-birhanu/vinom-wayout/service/i"
)

const defaultMemoryCapacity = 500

var _ i.ReportRepo = &MemoryReportRepo{}

// MemoryReportRepo keeps the latest run reports in memory.
type MemoryReportRepo struct {
	reports  []*dmn.RunReport
	capacity int
	sync.RWMutex
}

// NewMemoryReportRepo creates a repo that retains at most capacity reports; older ones are dropped.
func NewMemoryReportRepo(capacity int) *MemoryReportRepo {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryReportRepo{capacity: capacity}
}

// Save stores a copy of report.
func (m *MemoryReportRepo) Save(_ context.Context, report *dmn.RunReport) error {
	m.Lock()
	defer m.Unlock()

	stored := *report
	m.reports = append(m.reports, &stored)
	if len(m.reports) > m.capacity {
		m.reports = m.reports[len(m.reports)-m.capacity:]
	}
	return nil
}

// Recent returns up to limit reports ordered by finish time, newest first.
func (m *MemoryReportRepo) Recent(_ context.Context, limit int) ([]*dmn.RunReport, error) {
	m.RLock()
	sorted := make([]*dmn.RunReport, len(m.reports))
	for idx, r := range m.reports {
		stored := *r
		sorted[idx] = &stored
	}
	m.RUnlock()

	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].FinishedAt.After(sorted[b].FinishedAt)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}
