package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// PublicEvents handles GET /events
// Searches published events by text, category, paid flag, date range
// and availability, with pagination and optional sorting.
func (h *Handler) PublicEvents(w http.ResponseWriter, r *http.Request) {
	f := model.EventFilter{
		Text:       r.URL.Query().Get("text"),
		Categories: queryList(r, "categories"),
		States:     []model.EventState{model.StatePublished},
		From:       queryInt(r, "from", 0),
		Size:       queryInt(r, "size", 10),
	}

	paid, ok := queryBool(r, "paid")
	if !ok {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "paid must be a boolean")
		return
	}
	f.Paid = paid

	onlyAvailable, ok := queryBool(r, "onlyAvailable")
	if !ok {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "onlyAvailable must be a boolean")
		return
	}
	f.OnlyAvailable = onlyAvailable != nil && *onlyAvailable

	var err error
	if f.RangeStart, err = queryTime(r, "rangeStart", h.tf); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "rangeStart: invalid datetime")
		return
	}
	if f.RangeEnd, err = queryTime(r, "rangeEnd", h.tf); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "rangeEnd: invalid datetime")
		return
	}

	if raw := r.URL.Query().Get("sort"); raw != "" {
		sort, ok := model.EventSortFrom(raw)
		if !ok {
			writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "unknown sort: "+raw)
			return
		}
		f.Sort = sort
	}

	events, err := h.events.Query(r.Context(), f)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}

	h.recordHit(r.Context(), "/events", clientIP(r))

	short := make([]model.EventShortDTO, len(events))
	for i, e := range events {
		short[i] = e.ToShort()
	}
	writeJSON(w, http.StatusOK, short)
}

// PublicEvent handles GET /events/{id}
// Returns a single published event with its aggregates.
func (h *Handler) PublicEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.events.GetPublishedByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}

	h.recordHit(r.Context(), "/events/"+id, clientIP(r))

	writeJSON(w, http.StatusOK, event)
}

// PublicCategories handles GET /categories
func (h *Handler) PublicCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context(), queryInt(r, "from", 0), queryInt(r, "size", 10))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// PublicCategory handles GET /categories/{catId}
func (h *Handler) PublicCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetByID(r.Context(), chi.URLParam(r, "catId"))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// PublicCompilations handles GET /compilations
func (h *Handler) PublicCompilations(w http.ResponseWriter, r *http.Request) {
	pinned, ok := queryBool(r, "pinned")
	if !ok {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "pinned must be a boolean")
		return
	}

	compilations, err := h.compilations.List(r.Context(), pinned, queryInt(r, "from", 0), queryInt(r, "size", 10))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, compilations)
}

// PublicCompilation handles GET /compilations/{compId}
func (h *Handler) PublicCompilation(w http.ResponseWriter, r *http.Request) {
	compilation, err := h.compilations.GetByID(r.Context(), chi.URLParam(r, "compId"))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, compilation)
}

// PublicComments handles GET /events/{id}/comments
func (h *Handler) PublicComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListByEvent(r.Context(), chi.URLParam(r, "id"),
		queryInt(r, "from", 0), queryInt(r, "size", 10))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
