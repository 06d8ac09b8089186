package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"tominotrumpets/internal/models"
	"tominotrumpets/internal/store"
)

type songRequest struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ArtistID int64  `json:"artistId"`
	Album    string `json:"album"`
	Length   int    `json:"length"`
}

func (req songRequest) model() models.Song {
	return models.Song{
		ID:       req.ID,
		Title:    req.Title,
		ArtistID: req.ArtistID,
		Album:    req.Album,
		Length:   req.Length,
	}
}

// songDetailResponse nests the artist in place of the raw artistId. Artist
// is null when the referenced artist no longer exists.
type songDetailResponse struct {
	ID     int64          `json:"id"`
	Title  string         `json:"title"`
	Album  string         `json:"album"`
	Length int            `json:"length"`
	Artist *models.Artist `json:"artist"`
	Genres []models.Genre `json:"genres"`
}

func newSongDetailResponse(detail models.SongDetail) songDetailResponse {
	resp := songDetailResponse{
		ID:     detail.ID,
		Title:  detail.Title,
		Album:  detail.Album,
		Length: detail.Length,
		Artist: detail.Artist,
		Genres: detail.Genres,
	}
	if resp.Genres == nil {
		resp.Genres = []models.Genre{}
	}
	return resp
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs.List(r.Context())
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	if songs == nil {
		songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.songs.Create(r.Context(), req.model())
	if err != nil {
		writeError(w, r, err, req.ID)
		return
	}
	writeCreated(w, fmt.Sprintf("/api/songs/%d", created.ID), created)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := s.songs.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, id)
		return
	}
	writeJSON(w, http.StatusOK, newSongDetailResponse(detail))
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req songRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.songs.Update(r.Context(), id, req.model())
	if err != nil {
		writeError(w, r, err, id)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.songs.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSongGenre(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	genreID, ok := pathID(w, r, "genreId")
	if !ok {
		return
	}

	link, err := s.songs.AddGenre(r.Context(), songID, genreID)
	if err != nil {
		writeError(w, r, err, associationErrorID(err, songID, genreID))
		return
	}
	writeCreated(w, fmt.Sprintf("/api/songs/%d", songID), link)
}

func (s *Server) handleRemoveSongGenre(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	genreID, ok := pathID(w, r, "genreId")
	if !ok {
		return
	}

	if err := s.songs.RemoveGenre(r.Context(), songID, genreID); err != nil {
		writeError(w, r, err, associationErrorID(err, songID, genreID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// associationErrorID picks the identifier a 404 body should echo.
func associationErrorID(err error, songID, genreID int64) int64 {
	if errors.Is(err, store.ErrGenreNotFound) || errors.Is(err, store.ErrSongGenreNotFound) {
		return genreID
	}
	return songID
}
