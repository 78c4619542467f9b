package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// OwnEvents handles GET /users/{userId}/events
func (h *Handler) OwnEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListByInitiator(r.Context(), chi.URLParam(r, "userId"),
		queryInt(r, "from", 0), queryInt(r, "size", 10))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST /users/{userId}/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.NewEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.Create(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// OwnEvent handles GET /users/{userId}/events/{eventId}
func (h *Handler) OwnEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetByIDForInitiator(r.Context(),
		chi.URLParam(r, "eventId"), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// UpdateOwnEvent handles PATCH /users/{userId}/events/{eventId}
// Applies field updates plus an optional SEND_TO_REVIEW or
// CANCEL_REVIEW transition.
func (h *Handler) UpdateOwnEvent(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.UpdateByInitiator(r.Context(),
		chi.URLParam(r, "eventId"), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// EventRequests handles GET /users/{userId}/events/{eventId}/requests
// Lists participation requests for the caller's own event.
func (h *Handler) EventRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.ListByEvent(r.Context(),
		chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// ModerateRequests handles PATCH /users/{userId}/events/{eventId}/requests
// Confirms or rejects a batch of pending requests against the
// remaining capacity.
func (h *Handler) ModerateRequests(w http.ResponseWriter, r *http.Request) {
	var req model.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.requests.UpdateStatuses(r.Context(),
		chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// OwnRequests handles GET /users/{userId}/requests
// Lists the caller's participation requests in other users' events.
func (h *Handler) OwnRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.ListOwn(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// CreateRequest handles POST /users/{userId}/requests?eventId=
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "eventId is required")
		return
	}

	request, err := h.requests.Create(r.Context(), chi.URLParam(r, "userId"), eventID)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

// CancelRequest handles PATCH /users/{userId}/requests/{requestId}/cancel
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	request, err := h.requests.Cancel(r.Context(),
		chi.URLParam(r, "userId"), chi.URLParam(r, "requestId"))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// CreateComment handles POST /users/{userId}/events/{eventId}/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req model.NewCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.tf, http.StatusBadRequest, reasonBadRequest, "invalid request body: "+err.Error())
		return
	}

	comment, err := h.comments.Create(r.Context(),
		chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"), req)
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// OwnComments handles GET /users/{userId}/comments
func (h *Handler) OwnComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListByAuthor(r.Context(), chi.URLParam(r, "userId"),
		queryInt(r, "from", 0), queryInt(r, "size", 10))
	if err != nil {
		writeServiceError(w, h.tf, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
