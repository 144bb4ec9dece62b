// Package analytics shapes the backend's per-month aggregates into the
// series the dashboard charts consume.
package analytics

import (
	"context"
	"log/slog"

	"github.com/feastly/opsboard/internal/session"
)

// Row is one month of aggregated order data as reported by the backend.
type Row struct {
	Month        string  `json:"month"`
	OrderCount   int64   `json:"order_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Source fetches the monthly aggregates for one restaurant.
type Source interface {
	MonthlyOrdersAndRevenue(ctx context.Context, restaurantID string) ([]Row, error)
}

// Report is the chart-ready shape: one category axis shared by both series,
// in the backend's month order.
type Report struct {
	Months      []string  `json:"months"`
	OrderCounts []int64   `json:"order_counts"`
	Revenues    []float64 `json:"revenues"`
}

// Empty reports whether there is nothing to chart. The dashboard renders a
// "no orders" placeholder rather than treating this as a failure.
func (r Report) Empty() bool {
	return len(r.Months) == 0
}

// Service resolves the session identity and assembles monthly reports.
type Service struct {
	source   Source
	sessions session.Store
	logger   *slog.Logger
}

// NewService wires required dependencies.
func NewService(source Source, sessions session.Store, logger *slog.Logger) *Service {
	return &Service{source: source, sessions: sessions, logger: logger}
}

// MonthlyReport fetches and shapes the aggregates for the session's
// restaurant.
func (s *Service) MonthlyReport(ctx context.Context, sessionID string) (Report, error) {
	restaurantID, err := session.Identity(ctx, s.sessions, sessionID)
	if err != nil {
		return Report{}, err
	}

	rows, err := s.source.MonthlyOrdersAndRevenue(ctx, restaurantID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch monthly aggregates",
			"restaurant_id", restaurantID,
			"error", err,
		)
		return Report{}, err
	}

	report := Report{
		Months:      make([]string, 0, len(rows)),
		OrderCounts: make([]int64, 0, len(rows)),
		Revenues:    make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		report.Months = append(report.Months, row.Month)
		report.OrderCounts = append(report.OrderCounts, row.OrderCount)
		report.Revenues = append(report.Revenues, row.TotalRevenue)
	}
	return report, nil
}
