package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tominotrumpets/internal/models"
)

const genresTable = "genres"

// CreateGenre inserts a genre and returns it with its identifier.
func (s *Store) CreateGenre(ctx context.Context, genre models.Genre) (models.Genre, error) {
	id, err := s.insertRow(ctx, genresTable, genre.ID,
		[]string{"description"},
		genre.Description,
	)
	if err != nil {
		return models.Genre{}, err
	}
	genre.ID = id
	return genre, nil
}

// ListGenres returns every genre ordered by ID.
func (s *Store) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description
		FROM genres
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	genres := make([]models.Genre, 0)
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Description); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}

	return genres, nil
}

// GetGenreDetail returns a genre with the songs associated to it.
func (s *Store) GetGenreDetail(ctx context.Context, id int64) (models.GenreDetail, error) {
	var detail models.GenreDetail
	err := s.db.QueryRowContext(ctx, `
		SELECT id, description
		FROM genres
		WHERE id = $1
	`, id).Scan(&detail.ID, &detail.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GenreDetail{}, ErrGenreNotFound
	}
	if err != nil {
		return models.GenreDetail{}, fmt.Errorf("get genre: %w", err)
	}

	songs, err := s.querySongs(ctx, `
		SELECT s.id, s.title, s.artist_id, s.album, s.length
		FROM song_genres sg
		JOIN songs s ON s.id = sg.song_id
		WHERE sg.genre_id = $1
		ORDER BY s.id
	`, id)
	if err != nil {
		return models.GenreDetail{}, err
	}
	detail.Songs = songs

	return detail, nil
}

// UpdateGenre overwrites the description of the genre with the given ID.
func (s *Store) UpdateGenre(ctx context.Context, id int64, genre models.Genre) (models.Genre, error) {
	var g models.Genre
	err := s.db.QueryRowContext(ctx, `
		UPDATE genres
		SET description = $1
		WHERE id = $2
		RETURNING id, description
	`, genre.Description, id).Scan(&g.ID, &g.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Genre{}, ErrGenreNotFound
	}
	if err != nil {
		return models.Genre{}, fmt.Errorf("update genre: %w", err)
	}
	return g, nil
}

// DeleteGenre removes a genre. Its song associations are handled per policy.
func (s *Store) DeleteGenre(ctx context.Context, id int64, policy models.DeletePolicy) error {
	if policy == models.DeleteOrphan || policy == "" {
		return deleteByID(ctx, s.db, genresTable, id, ErrGenreNotFound)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := deleteByID(ctx, tx, genresTable, id, ErrGenreNotFound); err != nil {
			return err
		}

		switch policy {
		case models.DeleteRestrict:
			count, err := countWhere(ctx, tx, songGenresTable, "genre_id", id)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("genre %d has %d songs: %w", id, count, ErrConflict)
			}
		case models.DeleteCascade:
			if _, err := tx.ExecContext(ctx, `
				DELETE FROM song_genres
				WHERE genre_id = $1
			`, id); err != nil {
				return fmt.Errorf("delete genre songs: %w", err)
			}
		default:
			return fmt.Errorf("unknown delete policy %q", policy)
		}
		return nil
	})
}
