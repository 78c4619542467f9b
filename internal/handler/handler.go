package handler

import (
	"context"
	"log/slog"

	"github.com/desyatov-student/explore-with-me/internal/service"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

// HitRecorder records page views on the stats collaborator.
type HitRecorder interface {
	RecordHit(ctx context.Context, uri, ip string) error
}

// Handler holds all HTTP handlers of the main API.
type Handler struct {
	events       *service.EventService
	requests     *service.RequestService
	users        *service.UserService
	categories   *service.CategoryService
	compilations *service.CompilationService
	comments     *service.CommentService
	hits         HitRecorder
	tf           timefmt.Formatter
	log          *slog.Logger
}

// New constructs a Handler.
func New(
	events *service.EventService,
	requests *service.RequestService,
	users *service.UserService,
	categories *service.CategoryService,
	compilations *service.CompilationService,
	comments *service.CommentService,
	hits HitRecorder,
	tf timefmt.Formatter,
	log *slog.Logger,
) *Handler {
	return &Handler{
		events:       events,
		requests:     requests,
		users:        users,
		categories:   categories,
		compilations: compilations,
		comments:     comments,
		hits:         hits,
		tf:           tf,
		log:          log,
	}
}

// recordHit reports a public page view. Stats outages must not affect
// the response, so failures are only logged.
func (h *Handler) recordHit(ctx context.Context, uri, ip string) {
	if err := h.hits.RecordHit(ctx, uri, ip); err != nil {
		h.log.Warn("record hit failed", slog.String("uri", uri), slog.String("error", err.Error()))
	}
}
