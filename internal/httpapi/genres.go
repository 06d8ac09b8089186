package httpapi

import (
	"fmt"
	"net/http"

	"tominotrumpets/internal/models"
)

type genreRequest struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type genreDetailResponse struct {
	ID          int64         `json:"id"`
	Description string        `json:"description"`
	Songs       []models.Song `json:"songs"`
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.genres.List(r.Context())
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	if genres == nil {
		genres = []models.Genre{}
	}
	writeJSON(w, http.StatusOK, genres)
}

func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	var req genreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.genres.Create(r.Context(), models.Genre{ID: req.ID, Description: req.Description})
	if err != nil {
		writeError(w, r, err, req.ID)
		return
	}
	writeCreated(w, fmt.Sprintf("/api/genres/%d", created.ID), created)
}

// handleGetGenre returns the genre with the songs currently associated with it.
func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := s.genres.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, id)
		return
	}

	resp := genreDetailResponse{ID: detail.ID, Description: detail.Description, Songs: detail.Songs}
	if resp.Songs == nil {
		resp.Songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req genreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.genres.Update(r.Context(), id, models.Genre{ID: req.ID, Description: req.Description})
	if err != nil {
		writeError(w, r, err, id)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.genres.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
