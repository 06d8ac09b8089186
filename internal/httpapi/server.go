package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"tominotrumpets/internal/http/middleware"
	"tominotrumpets/internal/models"
)

// ArtistService describes artist catalogue workflows.
type ArtistService interface {
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	List(ctx context.Context) ([]models.Artist, error)
	Get(ctx context.Context, id int64) (models.ArtistDetail, error)
	Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

// SongService coordinates track-level operations.
type SongService interface {
	Create(ctx context.Context, song models.Song) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Get(ctx context.Context, id int64) (models.SongDetail, error)
	Update(ctx context.Context, id int64, song models.Song) (models.Song, error)
	Delete(ctx context.Context, id int64) error
	AddGenre(ctx context.Context, songID, genreID int64) (models.SongGenre, error)
	RemoveGenre(ctx context.Context, songID, genreID int64) error
}

// GenreService coordinates genre operations.
type GenreService interface {
	Create(ctx context.Context, genre models.Genre) (models.Genre, error)
	List(ctx context.Context) ([]models.Genre, error)
	Get(ctx context.Context, id int64) (models.GenreDetail, error)
	Update(ctx context.Context, id int64, genre models.Genre) (models.Genre, error)
	Delete(ctx context.Context, id int64) error
}

// Options tunes the middleware chain installed by Routes.
type Options struct {
	AllowedOrigins []string
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	artists ArtistService
	songs   SongService
	genres  GenreService
	opts    Options
}

// New configures a Server with the given services.
func New(artists ArtistService, songs SongService, genres GenreService, opts Options) *Server {
	return &Server{
		artists: artists,
		songs:   songs,
		genres:  genres,
		opts:    opts,
	}
}

// Routes exposes the catalog HTTP handlers.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogging(), middleware.Recovery())
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/artists", s.handleListArtists).Methods(http.MethodGet)
	router.HandleFunc("/api/artists", s.handleCreateArtist).Methods(http.MethodPost)
	router.HandleFunc("/api/artists/{id}", s.handleGetArtist).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{id}", s.handleUpdateArtist).Methods(http.MethodPut)
	router.HandleFunc("/api/artists/{id}", s.handleDeleteArtist).Methods(http.MethodDelete)

	router.HandleFunc("/api/songs", s.handleListSongs).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", s.handleCreateSong).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id}", s.handleGetSong).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", s.handleUpdateSong).Methods(http.MethodPut)
	router.HandleFunc("/api/songs/{id}", s.handleDeleteSong).Methods(http.MethodDelete)
	router.HandleFunc("/api/songs/{id}/genres/{genreId}", s.handleAddSongGenre).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id}/genres/{genreId}", s.handleRemoveSongGenre).Methods(http.MethodDelete)

	router.HandleFunc("/api/genres", s.handleListGenres).Methods(http.MethodGet)
	router.HandleFunc("/api/genres", s.handleCreateGenre).Methods(http.MethodPost)
	router.HandleFunc("/api/genres/{id}", s.handleGetGenre).Methods(http.MethodGet)
	router.HandleFunc("/api/genres/{id}", s.handleUpdateGenre).Methods(http.MethodPut)
	router.HandleFunc("/api/genres/{id}", s.handleDeleteGenre).Methods(http.MethodDelete)

	// CORS sits outside the router so preflight requests are answered
	// before route matching.
	return middleware.CORS(s.opts.AllowedOrigins)(router)
}
