package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db}
}

func (r *AnalyticsRepository) InsertPageView(ctx context.Context, v *entity.PageView) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO page_views (page, referrer, device, browser, country, session_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.Page, nullable(v.Referrer), nullable(v.Device), nullable(v.Browser), nullable(v.Country),
		nullable(v.SessionID), v.CreatedAt)
	return err
}

// ViewsSince fetches every page view row at or after the cutoff in one query.
// Aggregation happens in memory; view volume is assumed small.
func (r *AnalyticsRepository) ViewsSince(ctx context.Context, since time.Time) ([]entity.PageView, error) {
	query := `SELECT id, page, COALESCE(referrer, ''), COALESCE(device, ''), COALESCE(browser, ''),
		COALESCE(country, ''), COALESCE(session_id, ''), created_at
		FROM page_views WHERE created_at >= ? ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []entity.PageView
	for rows.Next() {
		v := entity.PageView{}
		err := rows.Scan(&v.ID, &v.Page, &v.Referrer, &v.Device, &v.Browser, &v.Country, &v.SessionID, &v.CreatedAt)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
