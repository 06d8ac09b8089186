package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tominotrumpets/internal/logging"
	"tominotrumpets/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
	ID    *int64 `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeCreated(w http.ResponseWriter, location string, payload any) {
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusCreated, payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	return true
}

// pathID parses the named mux variable, writing a 400 when it is not an integer.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid %s parameter", name)})
		return 0, false
	}
	return id, true
}

var notFoundErrors = []error{
	store.ErrArtistNotFound,
	store.ErrSongNotFound,
	store.ErrGenreNotFound,
	store.ErrSongGenreNotFound,
}

// writeError maps service errors onto the HTTP contract. id is echoed in
// 404 bodies.
func writeError(w http.ResponseWriter, r *http.Request, err error, id int64) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: target.Error(), ID: &id})
			return
		}
	}

	switch {
	case errors.Is(err, store.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logging.WithContext(r.Context()).Warn().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request cancelled")
		writeJSON(w, http.StatusRequestTimeout, errorResponse{Error: "request cancelled"})
	default:
		logging.WithContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("store failure")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
