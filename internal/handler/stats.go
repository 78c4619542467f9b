package handler

import (
	"log/slog"
	"net/http"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/service"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

// StatsHandler holds the HTTP handlers of the stats service.
type StatsHandler struct {
	svc *service.StatsService
	tf  timefmt.Formatter
	log *slog.Logger
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(svc *service.StatsService, tf timefmt.Formatter, log *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, tf: tf, log: log}
}

// RecordHit handles POST /hit
func (h *StatsHandler) RecordHit(w http.ResponseWriter, r *http.Request) {
	var req model.NewHitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	hit, err := h.svc.Record(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusCreated, hit)
}

// Stats handles GET /stats
// Aggregates recorded hits over a half-open time range, optionally
// restricted to a uri set and deduplicated by client ip.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	start, err := h.tf.Parse(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "start: invalid datetime")
		return
	}
	end, err := h.tf.Parse(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "end: invalid datetime")
		return
	}

	unique, ok := queryBool(r, "unique")
	if !ok {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "unique must be a boolean")
		return
	}

	stats, err := h.svc.Stats(r.Context(), start, end, queryList(r, "uris"), unique != nil && *unique)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
