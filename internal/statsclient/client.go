// Package statsclient is the HTTP client of the stats collaborator used
// by the main service to record page views and read aggregates.
package statsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desyatov-student/explore-with-me/internal/config"
	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

// Client talks to the stats service over HTTP.
type Client struct {
	baseURL string
	app     string
	http    *http.Client
	tf      timefmt.Formatter
	log     *slog.Logger
}

// New constructs a Client for the given stats endpoint. The app name is
// attached to every recorded hit.
func New(cfg config.StatsClientConfig, app string, tf timefmt.Formatter, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		app:     app,
		http:    &http.Client{Timeout: cfg.Timeout},
		tf:      tf,
		log:     log,
	}
}

// RecordHit posts one page view to the stats service.
func (c *Client) RecordHit(ctx context.Context, uri, ip string) error {
	body, err := json.Marshal(model.NewHitRequest{App: c.app, URI: uri, IP: ip})
	if err != nil {
		return fmt.Errorf("marshal hit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build hit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post hit: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("post hit: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Views reads per-uri hit aggregates over [start, end).
func (c *Client) Views(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error) {
	params := url.Values{}
	params.Set("start", c.tf.Format(start))
	params.Set("end", c.tf.Format(end))
	if len(uris) > 0 {
		params.Set("uris", strings.Join(uris, ","))
	}
	params.Set("unique", strconv.FormatBool(unique))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build stats request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("get stats: unexpected status %d", resp.StatusCode)
	}

	var stats []model.ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}
