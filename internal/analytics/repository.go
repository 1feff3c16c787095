// Package analytics records page views and aggregates lead metrics.
package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PageView is a single beacon hit.
type PageView struct {
	Path     string
	Referrer string
	Locale   string
	IPHash   string
}

// Repository writes beacons and reads the aggregates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RecordPageView inserts a beacon hit.
func (r *Repository) RecordPageView(ctx context.Context, view PageView) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pago_page_views (path, referrer, locale, ip_hash)
		VALUES ($1, $2, $3, $4)`,
		view.Path, view.Referrer, view.Locale, view.IPHash)
	return err
}

// DayCount is one point of a time series.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// KeyCount is one slice of a breakdown.
type KeyCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Summary is the admin dashboard payload.
type Summary struct {
	TotalLeads     int64      `json:"totalLeads"`
	TotalPageViews int64      `json:"totalPageViews"`
	LeadsByDay     []DayCount `json:"leadsByDay"`
	LeadsBySource  []KeyCount `json:"leadsBySource"`
	LeadsByStatus  []KeyCount `json:"leadsByStatus"`
	TopPages       []KeyCount `json:"topPages"`
}

// Summarize builds the dashboard aggregates over the last 30 days of
// activity (totals cover everything).
func (r *Repository) Summarize(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pago_leads WHERE deleted_at IS NULL`).Scan(&summary.TotalLeads); err != nil {
		return nil, err
	}
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pago_page_views`).Scan(&summary.TotalPageViews); err != nil {
		return nil, err
	}

	dayRows, err := r.pool.Query(ctx, `
		SELECT date_trunc('day', created_at) AS day, COUNT(*)
		FROM pago_leads
		WHERE deleted_at IS NULL AND created_at >= NOW() - INTERVAL '30 days'
		GROUP BY day
		ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var point DayCount
		if err := dayRows.Scan(&point.Day, &point.Count); err != nil {
			return nil, err
		}
		summary.LeadsByDay = append(summary.LeadsByDay, point)
	}
	if err := dayRows.Err(); err != nil {
		return nil, err
	}

	var qErr error
	summary.LeadsBySource, qErr = r.keyCounts(ctx, `
		SELECT COALESCE(NULLIF(source, ''), 'desconhecida'), COUNT(*)
		FROM pago_leads WHERE deleted_at IS NULL
		GROUP BY 1 ORDER BY 2 DESC`)
	if qErr != nil {
		return nil, qErr
	}

	summary.LeadsByStatus, qErr = r.keyCounts(ctx, `
		SELECT status, COUNT(*)
		FROM pago_leads WHERE deleted_at IS NULL
		GROUP BY 1 ORDER BY 2 DESC`)
	if qErr != nil {
		return nil, qErr
	}

	summary.TopPages, qErr = r.keyCounts(ctx, `
		SELECT path, COUNT(*)
		FROM pago_page_views
		WHERE occurred_at >= NOW() - INTERVAL '30 days'
		GROUP BY 1 ORDER BY 2 DESC
		LIMIT 10`)
	if qErr != nil {
		return nil, qErr
	}

	return summary, nil
}

func (r *Repository) keyCounts(ctx context.Context, query string) ([]KeyCount, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KeyCount
	for rows.Next() {
		var kc KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, err
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}
