package songs

import (
	"context"

	"tominotrumpets/internal/logging"
	"tominotrumpets/internal/models"
)

// Store defines the persistence operations needed for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song models.Song) (models.Song, error)
	ListSongs(ctx context.Context) ([]models.Song, error)
	GetSongDetail(ctx context.Context, id int64) (models.SongDetail, error)
	UpdateSong(ctx context.Context, id int64, song models.Song) (models.Song, error)
	DeleteSong(ctx context.Context, id int64) error
	AddSongGenre(ctx context.Context, songID, genreID int64) (models.SongGenre, error)
	RemoveSongGenre(ctx context.Context, songID, genreID int64) error
}

// Service exposes song-centric operations.
type Service interface {
	Create(ctx context.Context, song models.Song) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Get(ctx context.Context, id int64) (models.SongDetail, error)
	Update(ctx context.Context, id int64, song models.Song) (models.Song, error)
	Delete(ctx context.Context, id int64) error
	AddGenre(ctx context.Context, songID, genreID int64) (models.SongGenre, error)
	RemoveGenre(ctx context.Context, songID, genreID int64) error
}

type service struct {
	store Store
}

// New constructs a song Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, song models.Song) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	return s.store.CreateSong(ctx, song)
}

func (s *service) List(ctx context.Context) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx)
}

// Get returns the song with its artist and genres as they are stored now.
func (s *service) Get(ctx context.Context, id int64) (models.SongDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.SongDetail{}, err
	}
	return s.store.GetSongDetail(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, song models.Song) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	song.ID = id
	return s.store.UpdateSong(ctx, id, song)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteSong(ctx, id); err != nil {
		return err
	}
	logging.WithContext(ctx).Info().Int64("song_id", id).Msg("song deleted")
	return nil
}

func (s *service) AddGenre(ctx context.Context, songID, genreID int64) (models.SongGenre, error) {
	if err := ctx.Err(); err != nil {
		return models.SongGenre{}, err
	}
	return s.store.AddSongGenre(ctx, songID, genreID)
}

func (s *service) RemoveGenre(ctx context.Context, songID, genreID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveSongGenre(ctx, songID, genreID)
}
