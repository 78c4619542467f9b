package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

func TestStatsServiceRecordValidation(t *testing.T) {
	svc := NewStatsService(&fakeHitStore{}, timefmt.UTC(), testLogger())

	_, err := svc.Record(context.Background(), model.NewHitRequest{App: "ewm"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, len(verr.Violations))
	for i, v := range verr.Violations {
		fields[i] = v.Field
	}
	assert.ElementsMatch(t, []string{"uri", "ip"}, fields)
}

func TestStatsServiceRecordAssignsServerTimestamp(t *testing.T) {
	var saved *model.EndpointHit
	hits := &fakeHitStore{
		CreateFn: func(ctx context.Context, h *model.EndpointHit) error {
			saved = h
			return nil
		},
	}
	svc := NewStatsService(hits, timefmt.UTC(), testLogger())

	got, err := svc.Record(context.Background(), model.NewHitRequest{
		App: "ewm-main-service",
		URI: "/events/e1",
		IP:  "192.168.1.10",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.NotEmpty(t, saved.ID)
	assert.WithinDuration(t, time.Now().UTC(), saved.Timestamp, 5*time.Second)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "/events/e1", got.URI)
	assert.NotEmpty(t, got.Timestamp)
}

func TestStatsServiceStatsRejectsInvertedRange(t *testing.T) {
	svc := NewStatsService(&fakeHitStore{}, timefmt.UTC(), testLogger())

	start := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	_, err := svc.Stats(context.Background(), start, start, nil, false)

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindValidation, serr.Kind)
}

func TestStatsServiceStatsEmptyIsNotNull(t *testing.T) {
	hits := &fakeHitStore{
		StatsFn: func(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error) {
			return nil, nil
		},
	}
	svc := NewStatsService(hits, timefmt.UTC(), testLogger())

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.Stats(context.Background(), start, start.Add(24*time.Hour), nil, true)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
