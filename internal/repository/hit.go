package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// HitRepository handles the append-only page-view log of the stats service.
type HitRepository struct {
	db *pgxpool.Pool
}

// NewHitRepository constructs a HitRepository.
func NewHitRepository(db *pgxpool.Pool) *HitRepository {
	return &HitRepository{db: db}
}

// Create appends one hit. Hits are never updated or deleted.
func (r *HitRepository) Create(ctx context.Context, h *model.EndpointHit) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO hits (id, app, uri, ip, ts) VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.App, h.URI, h.IP, h.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert hit: %w", err)
	}
	return nil
}

// Stats aggregates hits per (app, uri) over [start, end), most viewed
// first. An empty uri set means all uris; unique counts distinct client
// IPs instead of raw hits.
func (r *HitRepository) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error) {
	count := "COUNT(id)"
	if unique {
		count = "COUNT(DISTINCT ip)"
	}

	sql := `SELECT app, uri, ` + count + ` AS hits FROM hits WHERE ts >= $1 AND ts < $2`
	args := []any{start, end}
	if len(uris) > 0 {
		sql += ` AND uri = ANY($3)`
		args = append(args, uris)
	}
	sql += ` GROUP BY app, uri ORDER BY hits DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats []model.ViewStats
	for rows.Next() {
		var s model.ViewStats
		if err := rows.Scan(&s.App, &s.URI, &s.Hits); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
