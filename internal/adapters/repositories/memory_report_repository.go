package repositories

import (
	"accident-alert-service/internal/domain"
	"context"
	"errors"
	"sync"
)

// MemoryReportRepository stores reports in process memory.
type MemoryReportRepository struct {
	mu      sync.Mutex
	reports []*domain.Report
}

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{}
}

func (m *MemoryReportRepository) SaveReport(ctx context.Context, report *domain.Report) error {
	if report == nil {
		return errors.New("save report: report is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := *report
	m.reports = append(m.reports, &r)
	return nil
}

// Return the most recent reports, newest first.
func (m *MemoryReportRepository) ListReports(ctx context.Context, limit int) ([]*domain.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.reports) {
		limit = len(m.reports)
	}

	out := make([]*domain.Report, 0, limit)
	for i := len(m.reports) - 1; i >= 0 && len(out) < limit; i-- {
		r := *m.reports[i]
		out = append(out, &r)
	}
	return out, nil
}
