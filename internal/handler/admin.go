package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// AdminUsers handles GET /admin/users
func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), queryList(r, "ids"),
		queryInt(r, "from", 0), queryInt(r, "size", 10))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// AdminCreateUser handles POST /admin/users
func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.NewUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// AdminDeleteUser handles DELETE /admin/users/{userId}
func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminCreateCategory handles POST /admin/categories
func (h *Handler) AdminCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.NewCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := h.categories.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// AdminUpdateCategory handles PATCH /admin/categories/{catId}
func (h *Handler) AdminUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := h.categories.Update(r.Context(), chi.URLParam(r, "catId"), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// AdminDeleteCategory handles DELETE /admin/categories/{catId}
// Rejected with a conflict while any event still references the
// category.
func (h *Handler) AdminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "catId")); err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminEvents handles GET /admin/events
// Searches events across all states by initiator, state, category and
// date range.
func (h *Handler) AdminEvents(w http.ResponseWriter, r *http.Request) {
	f := model.EventFilter{
		Users:      queryList(r, "users"),
		Categories: queryList(r, "categories"),
		From:       queryInt(r, "from", 0),
		Size:       queryInt(r, "size", 10),
	}

	for _, raw := range queryList(r, "states") {
		state, ok := model.EventStateFrom(raw)
		if !ok {
			writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "unknown state: "+raw)
			return
		}
		f.States = append(f.States, state)
	}

	var err error
	if f.RangeStart, err = queryTime(r, "rangeStart", h.tf); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "rangeStart: invalid datetime")
		return
	}
	if f.RangeEnd, err = queryTime(r, "rangeEnd", h.tf); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "rangeEnd: invalid datetime")
		return
	}

	events, err := h.events.Query(r.Context(), f)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// AdminUpdateEvent handles PATCH /admin/events/{eventId}
// Applies field updates plus an optional PUBLISH_EVENT or REJECT_EVENT
// transition.
func (h *Handler) AdminUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.UpdateByAdmin(r.Context(), chi.URLParam(r, "eventId"), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// AdminCreateCompilation handles POST /admin/compilations
func (h *Handler) AdminCreateCompilation(w http.ResponseWriter, r *http.Request) {
	var req model.NewCompilationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	compilation, err := h.compilations.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusCreated, compilation)
}

// AdminUpdateCompilation handles PATCH /admin/compilations/{compId}
func (h *Handler) AdminUpdateCompilation(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCompilationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	compilation, err := h.compilations.Update(r.Context(), chi.URLParam(r, "compId"), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, compilation)
}

// AdminDeleteCompilation handles DELETE /admin/compilations/{compId}
func (h *Handler) AdminDeleteCompilation(w http.ResponseWriter, r *http.Request) {
	if err := h.compilations.Delete(r.Context(), chi.URLParam(r, "compId")); err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminDeleteComment handles DELETE /admin/comments/{commentId}
func (h *Handler) AdminDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.Delete(r.Context(), chi.URLParam(r, "commentId")); err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
