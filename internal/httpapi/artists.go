package httpapi

import (
	"fmt"
	"net/http"

	"tominotrumpets/internal/models"
)

type artistRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Bio  string `json:"bio"`
}

func (req artistRequest) model() models.Artist {
	return models.Artist{ID: req.ID, Name: req.Name, Age: req.Age, Bio: req.Bio}
}

type artistDetailResponse struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Age   int           `json:"age"`
	Bio   string        `json:"bio"`
	Songs []models.Song `json:"songs"`
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	if artists == nil {
		artists = []models.Artist{}
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req artistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.artists.Create(r.Context(), req.model())
	if err != nil {
		writeError(w, r, err, req.ID)
		return
	}
	writeCreated(w, fmt.Sprintf("/api/artists/%d", created.ID), created)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := s.artists.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, id)
		return
	}

	resp := artistDetailResponse{
		ID:    detail.ID,
		Name:  detail.Name,
		Age:   detail.Age,
		Bio:   detail.Bio,
		Songs: detail.Songs,
	}
	if resp.Songs == nil {
		resp.Songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req artistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.artists.Update(r.Context(), id, req.model())
	if err != nil {
		writeError(w, r, err, id)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.artists.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
