package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tominotrumpets/internal/models"
)

const (
	songsTable      = "songs"
	songGenresTable = "song_genres"
)

// CreateSong inserts a song. The artist reference is stored as given.
func (s *Store) CreateSong(ctx context.Context, song models.Song) (models.Song, error) {
	id, err := s.insertRow(ctx, songsTable, song.ID,
		[]string{"title", "artist_id", "album", "length"},
		song.Title, song.ArtistID, song.Album, song.Length,
	)
	if err != nil {
		return models.Song{}, err
	}
	song.ID = id
	return song, nil
}

// ListSongs returns every song ordered by ID.
func (s *Store) ListSongs(ctx context.Context) ([]models.Song, error) {
	return s.querySongs(ctx, `
		SELECT id, title, artist_id, album, length
		FROM songs
		ORDER BY id
	`)
}

// GetSong returns a single song by ID without related rows.
func (s *Store) GetSong(ctx context.Context, id int64) (models.Song, error) {
	var song models.Song
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, artist_id, album, length
		FROM songs
		WHERE id = $1
	`, id).Scan(&song.ID, &song.Title, &song.ArtistID, &song.Album, &song.Length)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Song{}, ErrSongNotFound
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// GetSongDetail returns a song with its current artist and genres.
func (s *Store) GetSongDetail(ctx context.Context, id int64) (models.SongDetail, error) {
	var (
		detail     models.SongDetail
		artistID   sql.NullInt64
		artistName sql.NullString
		artistAge  sql.NullInt32
		artistBio  sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.title, s.artist_id, s.album, s.length,
		       a.id, a.name, a.age, a.bio
		FROM songs s
		LEFT JOIN artists a ON a.id = s.artist_id
		WHERE s.id = $1
	`, id).Scan(
		&detail.ID, &detail.Title, &detail.ArtistID, &detail.Album, &detail.Length,
		&artistID, &artistName, &artistAge, &artistBio,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SongDetail{}, ErrSongNotFound
	}
	if err != nil {
		return models.SongDetail{}, fmt.Errorf("get song detail: %w", err)
	}

	if artistID.Valid {
		detail.Artist = &models.Artist{
			ID:   artistID.Int64,
			Name: artistName.String,
			Age:  int(artistAge.Int32),
			Bio:  artistBio.String,
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.description
		FROM song_genres sg
		JOIN genres g ON g.id = sg.genre_id
		WHERE sg.song_id = $1
		ORDER BY g.id
	`, id)
	if err != nil {
		return models.SongDetail{}, fmt.Errorf("query song genres: %w", err)
	}
	defer rows.Close()

	detail.Genres = make([]models.Genre, 0)
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Description); err != nil {
			return models.SongDetail{}, fmt.Errorf("scan song genre: %w", err)
		}
		detail.Genres = append(detail.Genres, g)
	}
	if err := rows.Err(); err != nil {
		return models.SongDetail{}, fmt.Errorf("iterate song genres: %w", err)
	}

	return detail, nil
}

// UpdateSong overwrites title, artist, album and length of the song with the given ID.
func (s *Store) UpdateSong(ctx context.Context, id int64, song models.Song) (models.Song, error) {
	var updated models.Song
	err := s.db.QueryRowContext(ctx, `
		UPDATE songs
		SET title = $1, artist_id = $2, album = $3, length = $4
		WHERE id = $5
		RETURNING id, title, artist_id, album, length
	`, song.Title, song.ArtistID, song.Album, song.Length, id).Scan(
		&updated.ID, &updated.Title, &updated.ArtistID, &updated.Album, &updated.Length,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Song{}, ErrSongNotFound
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("update song: %w", err)
	}
	return updated, nil
}

// DeleteSong removes a song together with its genre associations.
func (s *Store) DeleteSong(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := deleteByID(ctx, tx, songsTable, id, ErrSongNotFound); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM song_genres
			WHERE song_id = $1
		`, id); err != nil {
			return fmt.Errorf("delete song genres: %w", err)
		}
		return nil
	})
}

// AddSongGenre associates an existing song with an existing genre.
func (s *Store) AddSongGenre(ctx context.Context, songID, genreID int64) (models.SongGenre, error) {
	link := models.SongGenre{SongID: songID, GenreID: genreID}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, songsTable, songID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSongNotFound
		}

		ok, err = rowExists(ctx, tx, genresTable, genreID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrGenreNotFound
		}

		if err := tx.QueryRowContext(ctx, `
			INSERT INTO song_genres (song_id, genre_id)
			VALUES ($1, $2)
			RETURNING id
		`, songID, genreID).Scan(&link.ID); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("song %d already has genre %d: %w", songID, genreID, ErrConflict)
			}
			return fmt.Errorf("insert song genre: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.SongGenre{}, err
	}
	return link, nil
}

// RemoveSongGenre deletes the association between a song and a genre.
func (s *Store) RemoveSongGenre(ctx context.Context, songID, genreID int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM song_genres
		WHERE song_id = $1 AND genre_id = $2
	`, songID, genreID)
	if err != nil {
		return fmt.Errorf("delete song genre: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete song genre: %w", err)
	}
	if rows == 0 {
		return ErrSongGenreNotFound
	}
	return nil
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.Song, 0)
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Title, &song.ArtistID, &song.Album, &song.Length); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}

	return songs, nil
}
