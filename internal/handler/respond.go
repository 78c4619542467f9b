// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/repository"
	"github.com/desyatov-student/explore-with-me/internal/service"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

const (
	reasonNotFound   = "The required object was not found."
	reasonConflict   = "For the requested operation the conditions are not met."
	reasonBadRequest = "Incorrectly made request."
	reasonInternal   = "An unexpected error has occurred."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, tf timefmt.Formatter, status int, reason, msg string) {
	writeJSON(w, status, model.ApiError{
		Status:    http.StatusText(status),
		Reason:    reason,
		Message:   msg,
		Timestamp: tf.Format(tf.Now()),
	})
}

// writeServiceError maps business failures onto the error envelope.
func writeServiceError(w http.ResponseWriter, tf timefmt.Formatter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, model.ValidationErrorResponse{
			Message:    verr.Message,
			Violations: verr.Violations,
		})
		return
	}

	var serr *service.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case service.KindNotFound:
			writeError(w, tf, http.StatusNotFound, reasonNotFound, serr.Message)
		case service.KindConflict:
			writeError(w, tf, http.StatusConflict, reasonConflict, serr.Message)
		default:
			writeError(w, tf, http.StatusBadRequest, reasonBadRequest, serr.Message)
		}
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, tf, http.StatusNotFound, reasonNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicateCategory),
		errors.Is(err, repository.ErrDuplicateRequest),
		errors.Is(err, repository.ErrCategoryInUse),
		errors.Is(err, repository.ErrParticipantLimitReached):
		writeError(w, tf, http.StatusConflict, reasonConflict, err.Error())
	default:
		writeError(w, tf, http.StatusInternalServerError, reasonInternal, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// queryInt reads an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// queryList reads a multi-valued query parameter, splitting each value
// on commas and dropping blanks.
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func queryBool(r *http.Request, name string) (*bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func queryTime(r *http.Request, name string, tf timefmt.Formatter) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := tf.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// clientIP extracts the request origin. RealIP middleware has already
// folded X-Forwarded-For into RemoteAddr.
func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
