package ports

import (
	"accident-alert-service/internal/domain"
	"context"
)

// Port: persistence for accident reports.
type ReportRepository interface {
	SaveReport(ctx context.Context, report *domain.Report) error
	// Return the most recent reports, newest first.
	ListReports(ctx context.Context, limit int) ([]*domain.Report, error)
}
