package genres

import (
	"context"
	"errors"
	"testing"

	"tominotrumpets/internal/models"
)

type fakeStore struct {
	genres map[int64]models.Genre
	policy models.DeletePolicy
}

func newFakeStore() *fakeStore {
	return &fakeStore{genres: map[int64]models.Genre{1: {ID: 1, Description: "American Rock"}}}
}

var errMissing = errors.New("missing")

func (f *fakeStore) CreateGenre(_ context.Context, genre models.Genre) (models.Genre, error) {
	f.genres[genre.ID] = genre
	return genre, nil
}

func (f *fakeStore) ListGenres(context.Context) ([]models.Genre, error) {
	out := make([]models.Genre, 0, len(f.genres))
	for _, g := range f.genres {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeStore) GetGenreDetail(_ context.Context, id int64) (models.GenreDetail, error) {
	g, ok := f.genres[id]
	if !ok {
		return models.GenreDetail{}, errMissing
	}
	return models.GenreDetail{Genre: g, Songs: []models.Song{}}, nil
}

func (f *fakeStore) UpdateGenre(_ context.Context, id int64, genre models.Genre) (models.Genre, error) {
	if _, ok := f.genres[id]; !ok {
		return models.Genre{}, errMissing
	}
	f.genres[id] = genre
	return genre, nil
}

func (f *fakeStore) DeleteGenre(_ context.Context, id int64, policy models.DeletePolicy) error {
	f.policy = policy
	if _, ok := f.genres[id]; !ok {
		return errMissing
	}
	delete(f.genres, id)
	return nil
}

func TestUpdateMatchesPathIdentifier(t *testing.T) {
	store := newFakeStore()
	svc := New(store, models.DeleteOrphan)

	// The payload id points at a row that does not exist; the path id wins.
	got, err := svc.Update(context.Background(), 1, models.Genre{ID: 42, Description: "Rock"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.ID != 1 || store.genres[1].Description != "Rock" {
		t.Fatalf("unexpected update result: %#v", got)
	}
}

func TestDeleteUsesPolicy(t *testing.T) {
	store := newFakeStore()
	svc := New(store, models.DeleteRestrict)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if store.policy != models.DeleteRestrict {
		t.Fatalf("expected restrict policy, got %q", store.policy)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, errMissing) {
		t.Fatalf("expected missing error on second delete, got %v", err)
	}
}
