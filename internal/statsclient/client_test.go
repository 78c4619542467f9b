package statsclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desyatov-student/explore-with-me/internal/config"
	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

func newTestClient(url string) *Client {
	cfg := config.StatsClientConfig{URL: url, Timeout: 2 * time.Second}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, "ewm-main-service", timefmt.UTC(), log)
}

func TestClientRecordHit(t *testing.T) {
	var got model.NewHitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).RecordHit(context.Background(), "/events/e1", "10.0.0.7")
	require.NoError(t, err)

	assert.Equal(t, "ewm-main-service", got.App)
	assert.Equal(t, "/events/e1", got.URI)
	assert.Equal(t, "10.0.0.7", got.IP)
}

func TestClientRecordHitRejectsUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).RecordHit(context.Background(), "/events/e1", "10.0.0.7")
	assert.Error(t, err)
}

func TestClientViews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2026-08-01 00:00:00", q.Get("start"))
		assert.Equal(t, "2026-08-02 00:00:00", q.Get("end"))
		assert.Equal(t, "/events/e1,/events/e2", q.Get("uris"))
		assert.Equal(t, "true", q.Get("unique"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]model.ViewStats{
			{App: "ewm-main-service", URI: "/events/e1", Hits: 42},
		})
	}))
	defer srv.Close()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	got, err := newTestClient(srv.URL).Views(context.Background(), start, start.Add(24*time.Hour),
		[]string{"/events/e1", "/events/e2"}, true)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "/events/e1", got[0].URI)
	assert.Equal(t, int64(42), got[0].Hits)
}

func TestClientViewsPropagatesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := newTestClient(srv.URL).Views(context.Background(), start, start.Add(time.Hour), nil, false)
	assert.Error(t, err)
}

func TestClientViewsDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := newTestClient(srv.URL).Views(context.Background(), start, start.Add(time.Hour), nil, false)
	assert.Error(t, err)
}
