package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tominotrumpets/internal/models"
)

const artistsTable = "artists"

// CreateArtist inserts an artist and returns it with its identifier.
func (s *Store) CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	id, err := s.insertRow(ctx, artistsTable, artist.ID,
		[]string{"name", "age", "bio"},
		artist.Name, artist.Age, artist.Bio,
	)
	if err != nil {
		return models.Artist{}, err
	}
	artist.ID = id
	return artist, nil
}

// GetArtist returns a single artist by ID.
func (s *Store) GetArtist(ctx context.Context, id int64) (models.Artist, error) {
	var a models.Artist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, age, bio
		FROM artists
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Age, &a.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return models.Artist{}, fmt.Errorf("get artist: %w", err)
	}
	return a, nil
}

// GetArtistDetail returns an artist along with the songs that reference it.
func (s *Store) GetArtistDetail(ctx context.Context, id int64) (models.ArtistDetail, error) {
	artist, err := s.GetArtist(ctx, id)
	if err != nil {
		return models.ArtistDetail{}, err
	}

	songs, err := s.querySongs(ctx, `
		SELECT id, title, artist_id, album, length
		FROM songs
		WHERE artist_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return models.ArtistDetail{}, err
	}

	return models.ArtistDetail{Artist: artist, Songs: songs}, nil
}

// ListArtists returns every artist ordered by ID.
func (s *Store) ListArtists(ctx context.Context) ([]models.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, age, bio
		FROM artists
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	defer rows.Close()

	artists := make([]models.Artist, 0)
	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Age, &a.Bio); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}

	return artists, nil
}

// UpdateArtist overwrites name, age and bio of the artist with the given ID.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist models.Artist) (models.Artist, error) {
	var a models.Artist
	err := s.db.QueryRowContext(ctx, `
		UPDATE artists
		SET name = $1, age = $2, bio = $3
		WHERE id = $4
		RETURNING id, name, age, bio
	`, artist.Name, artist.Age, artist.Bio, id).Scan(&a.ID, &a.Name, &a.Age, &a.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return models.Artist{}, fmt.Errorf("update artist: %w", err)
	}
	return a, nil
}

// DeleteArtist removes an artist. Songs referencing it are handled per policy.
func (s *Store) DeleteArtist(ctx context.Context, id int64, policy models.DeletePolicy) error {
	if policy == models.DeleteOrphan || policy == "" {
		return deleteByID(ctx, s.db, artistsTable, id, ErrArtistNotFound)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := deleteByID(ctx, tx, artistsTable, id, ErrArtistNotFound); err != nil {
			return err
		}

		switch policy {
		case models.DeleteRestrict:
			count, err := countWhere(ctx, tx, songsTable, "artist_id", id)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("artist %d has %d songs: %w", id, count, ErrConflict)
			}
		case models.DeleteCascade:
			if _, err := tx.ExecContext(ctx, `
				DELETE FROM song_genres
				WHERE song_id IN (SELECT id FROM songs WHERE artist_id = $1)
			`, id); err != nil {
				return fmt.Errorf("delete artist song genres: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				DELETE FROM songs
				WHERE artist_id = $1
			`, id); err != nil {
				return fmt.Errorf("delete artist songs: %w", err)
			}
		default:
			return fmt.Errorf("unknown delete policy %q", policy)
		}
		return nil
	})
}
