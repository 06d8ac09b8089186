package artists

import (
	"context"

	"tominotrumpets/internal/logging"
	"tominotrumpets/internal/models"
)

// Store defines the persistence operations needed for artist workflows.
type Store interface {
	CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error)
	ListArtists(ctx context.Context) ([]models.Artist, error)
	GetArtistDetail(ctx context.Context, id int64) (models.ArtistDetail, error)
	UpdateArtist(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
	DeleteArtist(ctx context.Context, id int64, policy models.DeletePolicy) error
}

// Service provides artist-centric operations.
type Service interface {
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	List(ctx context.Context) ([]models.Artist, error)
	Get(ctx context.Context, id int64) (models.ArtistDetail, error)
	Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store  Store
	policy models.DeletePolicy
}

// New constructs an artist Service. policy decides what happens to an
// artist's songs when the artist is deleted.
func New(store Store, policy models.DeletePolicy) Service {
	if policy == "" {
		policy = models.DeleteOrphan
	}
	return &service{store: store, policy: policy}
}

func (s *service) Create(ctx context.Context, artist models.Artist) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) List(ctx context.Context) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (models.ArtistDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistDetail{}, err
	}
	return s.store.GetArtistDetail(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	artist.ID = id
	return s.store.UpdateArtist(ctx, id, artist)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteArtist(ctx, id, s.policy); err != nil {
		return err
	}
	logging.WithContext(ctx).Info().
		Int64("artist_id", id).
		Str("policy", string(s.policy)).
		Msg("artist deleted")
	return nil
}
