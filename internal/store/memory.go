package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tominotrumpets/internal/models"
)

// MemoryStore keeps the catalog in process memory. It honours the same
// identifier, uniqueness and delete policy rules as Store.
type MemoryStore struct {
	mu         sync.RWMutex
	artists    map[int64]models.Artist
	songs      map[int64]models.Song
	genres     map[int64]models.Genre
	songGenres map[int64]models.SongGenre

	nextArtistID    int64
	nextSongID      int64
	nextGenreID     int64
	nextSongGenreID int64
}

// NewMemoryStore returns an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		artists:         make(map[int64]models.Artist),
		songs:           make(map[int64]models.Song),
		genres:          make(map[int64]models.Genre),
		songGenres:      make(map[int64]models.SongGenre),
		nextArtistID:    1,
		nextSongID:      1,
		nextGenreID:     1,
		nextSongGenreID: 1,
	}
}

// NewSeededMemoryStore returns an in-memory catalog holding the seed rows.
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	ctx := context.Background()
	for _, a := range SeedArtists {
		_, _ = s.CreateArtist(ctx, a)
	}
	for _, g := range SeedGenres {
		_, _ = s.CreateGenre(ctx, g)
	}
	for _, song := range SeedSongs {
		_, _ = s.CreateSong(ctx, song)
	}
	for _, link := range SeedSongGenres {
		_, _ = s.AddSongGenre(ctx, link.SongID, link.GenreID)
	}
	return s
}

// assignID picks the row identifier the same way the serial-backed store does.
func assignID(requested int64, next *int64, taken func(int64) bool) (int64, error) {
	if requested <= 0 {
		for taken(*next) {
			*next++
		}
		id := *next
		*next++
		return id, nil
	}
	if taken(requested) {
		return 0, fmt.Errorf("id %d: %w", requested, ErrConflict)
	}
	if requested >= *next {
		*next = requested + 1
	}
	return requested, nil
}

// CreateArtist stores an artist, assigning an id when none is given.
func (m *MemoryStore) CreateArtist(_ context.Context, artist models.Artist) (models.Artist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := assignID(artist.ID, &m.nextArtistID, func(id int64) bool {
		_, ok := m.artists[id]
		return ok
	})
	if err != nil {
		return models.Artist{}, fmt.Errorf("insert artist: %w", err)
	}
	artist.ID = id
	m.artists[id] = artist
	return artist, nil
}

// GetArtist returns the artist with the given id.
func (m *MemoryStore) GetArtist(_ context.Context, id int64) (models.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	artist, ok := m.artists[id]
	if !ok {
		return models.Artist{}, ErrArtistNotFound
	}
	return artist, nil
}

// GetArtistDetail returns an artist with its songs ordered by id.
func (m *MemoryStore) GetArtistDetail(_ context.Context, id int64) (models.ArtistDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	artist, ok := m.artists[id]
	if !ok {
		return models.ArtistDetail{}, ErrArtistNotFound
	}
	songs := make([]models.Song, 0)
	for _, song := range m.songs {
		if song.ArtistID == id {
			songs = append(songs, song)
		}
	}
	sortSongs(songs)
	return models.ArtistDetail{Artist: artist, Songs: songs}, nil
}

// ListArtists returns every artist ordered by id.
func (m *MemoryStore) ListArtists(_ context.Context) ([]models.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	artists := make([]models.Artist, 0, len(m.artists))
	for _, a := range m.artists {
		artists = append(artists, a)
	}
	sort.Slice(artists, func(i, j int) bool { return artists[i].ID < artists[j].ID })
	return artists, nil
}

// UpdateArtist replaces the fields of an existing artist. The id in the payload is ignored.
func (m *MemoryStore) UpdateArtist(_ context.Context, id int64, artist models.Artist) (models.Artist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.artists[id]; !ok {
		return models.Artist{}, ErrArtistNotFound
	}
	artist.ID = id
	m.artists[id] = artist
	return artist, nil
}

// DeleteArtist removes an artist, handling its songs according to policy.
func (m *MemoryStore) DeleteArtist(_ context.Context, id int64, policy models.DeletePolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.artists[id]; !ok {
		return ErrArtistNotFound
	}

	var owned []int64
	for songID, song := range m.songs {
		if song.ArtistID == id {
			owned = append(owned, songID)
		}
	}

	switch policy {
	case models.DeleteOrphan, "":
	case models.DeleteRestrict:
		if len(owned) > 0 {
			return fmt.Errorf("artist %d has %d songs: %w", id, len(owned), ErrConflict)
		}
	case models.DeleteCascade:
		for _, songID := range owned {
			m.deleteSongLocked(songID)
		}
	default:
		return fmt.Errorf("unknown delete policy %q", policy)
	}

	delete(m.artists, id)
	return nil
}

// CreateSong stores a song, assigning an id when none is given.
func (m *MemoryStore) CreateSong(_ context.Context, song models.Song) (models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := assignID(song.ID, &m.nextSongID, func(id int64) bool {
		_, ok := m.songs[id]
		return ok
	})
	if err != nil {
		return models.Song{}, fmt.Errorf("insert song: %w", err)
	}
	song.ID = id
	m.songs[id] = song
	return song, nil
}

// ListSongs returns every song ordered by id.
func (m *MemoryStore) ListSongs(_ context.Context) ([]models.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	songs := make([]models.Song, 0, len(m.songs))
	for _, song := range m.songs {
		songs = append(songs, song)
	}
	sortSongs(songs)
	return songs, nil
}

// GetSong returns the song with the given id.
func (m *MemoryStore) GetSong(_ context.Context, id int64) (models.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	song, ok := m.songs[id]
	if !ok {
		return models.Song{}, ErrSongNotFound
	}
	return song, nil
}

// GetSongDetail returns a song with its artist, if it still exists, and its genres.
func (m *MemoryStore) GetSongDetail(_ context.Context, id int64) (models.SongDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	song, ok := m.songs[id]
	if !ok {
		return models.SongDetail{}, ErrSongNotFound
	}

	detail := models.SongDetail{Song: song, Genres: make([]models.Genre, 0)}
	if artist, ok := m.artists[song.ArtistID]; ok {
		detail.Artist = &artist
	}
	for _, link := range m.songGenres {
		if link.SongID != id {
			continue
		}
		if genre, ok := m.genres[link.GenreID]; ok {
			detail.Genres = append(detail.Genres, genre)
		}
	}
	sort.Slice(detail.Genres, func(i, j int) bool { return detail.Genres[i].ID < detail.Genres[j].ID })
	return detail, nil
}

// UpdateSong replaces the fields of an existing song.
func (m *MemoryStore) UpdateSong(_ context.Context, id int64, song models.Song) (models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.songs[id]; !ok {
		return models.Song{}, ErrSongNotFound
	}
	song.ID = id
	m.songs[id] = song
	return song, nil
}

// DeleteSong removes a song and its genre links.
func (m *MemoryStore) DeleteSong(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.songs[id]; !ok {
		return ErrSongNotFound
	}
	m.deleteSongLocked(id)
	return nil
}

func (m *MemoryStore) deleteSongLocked(id int64) {
	delete(m.songs, id)
	for linkID, link := range m.songGenres {
		if link.SongID == id {
			delete(m.songGenres, linkID)
		}
	}
}

// AddSongGenre links a genre to a song. Linking the same pair twice is a conflict.
func (m *MemoryStore) AddSongGenre(_ context.Context, songID, genreID int64) (models.SongGenre, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.songs[songID]; !ok {
		return models.SongGenre{}, ErrSongNotFound
	}
	if _, ok := m.genres[genreID]; !ok {
		return models.SongGenre{}, ErrGenreNotFound
	}
	for _, link := range m.songGenres {
		if link.SongID == songID && link.GenreID == genreID {
			return models.SongGenre{}, fmt.Errorf("song %d already has genre %d: %w", songID, genreID, ErrConflict)
		}
	}

	link := models.SongGenre{ID: m.nextSongGenreID, SongID: songID, GenreID: genreID}
	m.nextSongGenreID++
	m.songGenres[link.ID] = link
	return link, nil
}

// RemoveSongGenre unlinks a genre from a song.
func (m *MemoryStore) RemoveSongGenre(_ context.Context, songID, genreID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for linkID, link := range m.songGenres {
		if link.SongID == songID && link.GenreID == genreID {
			delete(m.songGenres, linkID)
			return nil
		}
	}
	return ErrSongGenreNotFound
}

// CreateGenre stores a genre, assigning an id when none is given.
func (m *MemoryStore) CreateGenre(_ context.Context, genre models.Genre) (models.Genre, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := assignID(genre.ID, &m.nextGenreID, func(id int64) bool {
		_, ok := m.genres[id]
		return ok
	})
	if err != nil {
		return models.Genre{}, fmt.Errorf("insert genre: %w", err)
	}
	genre.ID = id
	m.genres[id] = genre
	return genre, nil
}

// ListGenres returns every genre ordered by id.
func (m *MemoryStore) ListGenres(_ context.Context) ([]models.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	genres := make([]models.Genre, 0, len(m.genres))
	for _, g := range m.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

// GetGenreDetail returns a genre with the songs tagged with it.
func (m *MemoryStore) GetGenreDetail(_ context.Context, id int64) (models.GenreDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	genre, ok := m.genres[id]
	if !ok {
		return models.GenreDetail{}, ErrGenreNotFound
	}

	detail := models.GenreDetail{Genre: genre, Songs: make([]models.Song, 0)}
	for _, link := range m.songGenres {
		if link.GenreID != id {
			continue
		}
		if song, ok := m.songs[link.SongID]; ok {
			detail.Songs = append(detail.Songs, song)
		}
	}
	sortSongs(detail.Songs)
	return detail, nil
}

// UpdateGenre replaces the description of an existing genre.
func (m *MemoryStore) UpdateGenre(_ context.Context, id int64, genre models.Genre) (models.Genre, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.genres[id]; !ok {
		return models.Genre{}, ErrGenreNotFound
	}
	genre.ID = id
	m.genres[id] = genre
	return genre, nil
}

// DeleteGenre removes a genre, handling its song links according to policy.
func (m *MemoryStore) DeleteGenre(_ context.Context, id int64, policy models.DeletePolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.genres[id]; !ok {
		return ErrGenreNotFound
	}

	var linked []int64
	for linkID, link := range m.songGenres {
		if link.GenreID == id {
			linked = append(linked, linkID)
		}
	}

	switch policy {
	case models.DeleteOrphan, "":
	case models.DeleteRestrict:
		if len(linked) > 0 {
			return fmt.Errorf("genre %d has %d songs: %w", id, len(linked), ErrConflict)
		}
	case models.DeleteCascade:
		for _, linkID := range linked {
			delete(m.songGenres, linkID)
		}
	default:
		return fmt.Errorf("unknown delete policy %q", policy)
	}

	delete(m.genres, id)
	return nil
}

func sortSongs(songs []models.Song) {
	sort.Slice(songs, func(i, j int) bool { return songs[i].ID < songs[j].ID })
}
