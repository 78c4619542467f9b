package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/service"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

type memHitStore struct {
	hits  []model.EndpointHit
	stats []model.ViewStats
}

func (s *memHitStore) Create(ctx context.Context, h *model.EndpointHit) error {
	s.hits = append(s.hits, *h)
	return nil
}

func (s *memHitStore) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error) {
	return s.stats, nil
}

func newStatsServer(store *memHitStore) *httptest.Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tf := timefmt.UTC()
	h := NewStatsHandler(service.NewStatsService(store, tf, log), tf, log)
	return httptest.NewServer(h.Router(log))
}

func TestStatsEndpointRecordHit(t *testing.T) {
	store := &memHitStore{}
	srv := newStatsServer(store)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/hit", "application/json",
		strings.NewReader(`{"app":"ewm-main-service","uri":"/events/e1","ip":"10.0.0.7"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, store.hits, 1)
	assert.Equal(t, "/events/e1", store.hits[0].URI)
	assert.False(t, store.hits[0].Timestamp.IsZero())
}

func TestStatsEndpointRecordHitValidation(t *testing.T) {
	srv := newStatsServer(&memHitStore{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/hit", "application/json", strings.NewReader(`{"app":"ewm"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body model.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Violations, 2)
}

func TestStatsEndpointStats(t *testing.T) {
	store := &memHitStore{stats: []model.ViewStats{
		{App: "ewm-main-service", URI: "/events/e1", Hits: 7},
	}}
	srv := newStatsServer(store)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stats?start=2026-08-01%2000:00:00&end=2026-08-02%2000:00:00&unique=true")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []model.ViewStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].Hits)
}

func TestStatsEndpointStatsBadDates(t *testing.T) {
	srv := newStatsServer(&memHitStore{})
	defer srv.Close()

	for _, q := range []string{
		"start=yesterday&end=2026-08-02%2000:00:00",
		"start=2026-08-01%2000:00:00",
		"end=2026-08-02%2000:00:00",
	} {
		resp, err := http.Get(srv.URL + "/stats?" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestStatsEndpointStatsInvertedRange(t *testing.T) {
	srv := newStatsServer(&memHitStore{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stats?start=2026-08-02%2000:00:00&end=2026-08-01%2000:00:00")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
