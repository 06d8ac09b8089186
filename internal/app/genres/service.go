package genres

import (
	"context"

	"tominotrumpets/internal/logging"
	"tominotrumpets/internal/models"
)

// Store defines the persistence operations needed for genre workflows.
type Store interface {
	CreateGenre(ctx context.Context, genre models.Genre) (models.Genre, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetGenreDetail(ctx context.Context, id int64) (models.GenreDetail, error)
	UpdateGenre(ctx context.Context, id int64, genre models.Genre) (models.Genre, error)
	DeleteGenre(ctx context.Context, id int64, policy models.DeletePolicy) error
}

// Service coordinates genre-related operations.
type Service interface {
	Create(ctx context.Context, genre models.Genre) (models.Genre, error)
	List(ctx context.Context) ([]models.Genre, error)
	Get(ctx context.Context, id int64) (models.GenreDetail, error)
	Update(ctx context.Context, id int64, genre models.Genre) (models.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store  Store
	policy models.DeletePolicy
}

// New constructs a genre Service backed by the provided Store.
func New(store Store, policy models.DeletePolicy) Service {
	if policy == "" {
		policy = models.DeleteOrphan
	}
	return &service{store: store, policy: policy}
}

func (s *service) Create(ctx context.Context, genre models.Genre) (models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return models.Genre{}, err
	}
	return s.store.CreateGenre(ctx, genre)
}

func (s *service) List(ctx context.Context) ([]models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListGenres(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (models.GenreDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.GenreDetail{}, err
	}
	return s.store.GetGenreDetail(ctx, id)
}

// Update matches the stored row by the path id; an id in the payload is ignored.
func (s *service) Update(ctx context.Context, id int64, genre models.Genre) (models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return models.Genre{}, err
	}
	genre.ID = id
	return s.store.UpdateGenre(ctx, id, genre)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteGenre(ctx, id, s.policy); err != nil {
		return err
	}
	logging.WithContext(ctx).Info().
		Int64("genre_id", id).
		Str("policy", string(s.policy)).
		Msg("genre deleted")
	return nil
}
