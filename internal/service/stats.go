package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

// StatsService records endpoint hits and aggregates them on read.
type StatsService struct {
	hits HitStore
	tf   timefmt.Formatter
	log  *slog.Logger
}

// NewStatsService constructs a StatsService.
func NewStatsService(hits HitStore, tf timefmt.Formatter, log *slog.Logger) *StatsService {
	return &StatsService{hits: hits, tf: tf, log: log}
}

// Record stores one page view. The timestamp is assigned server-side.
func (s *StatsService) Record(ctx context.Context, req model.NewHitRequest) (model.HitDTO, error) {
	v := &ValidationError{Message: "invalid hit"}
	if req.App == "" {
		v.add("app", "must not be blank")
	}
	if req.URI == "" {
		v.add("uri", "must not be blank")
	}
	if req.IP == "" {
		v.add("ip", "must not be blank")
	}
	if err := v.orNil(); err != nil {
		return model.HitDTO{}, err
	}

	hit := &model.EndpointHit{
		ID:        uuid.New().String(),
		App:       req.App,
		URI:       req.URI,
		IP:        req.IP,
		Timestamp: s.tf.Now(),
	}
	if err := s.hits.Create(ctx, hit); err != nil {
		return model.HitDTO{}, err
	}
	s.log.Debug("hit recorded", slog.String("app", hit.App), slog.String("uri", hit.URI))
	return model.HitDTO{
		ID:        hit.ID,
		App:       hit.App,
		URI:       hit.URI,
		IP:        hit.IP,
		Timestamp: s.tf.Format(hit.Timestamp),
	}, nil
}

// Stats aggregates hits over [start, end), optionally restricted to a
// uri set and deduplicated by client ip.
func (s *StatsService) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error) {
	if !start.Before(end) {
		return nil, Invalidf("start must be before end")
	}
	stats, err := s.hits.Stats(ctx, start, end, uris, unique)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []model.ViewStats{}
	}
	return stats, nil
}
