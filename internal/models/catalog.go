package models

// Artist is a performer in the catalog.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Bio  string `json:"bio"`
}

// Song is a single track. ArtistID is not enforced as a foreign key.
type Song struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ArtistID int64  `json:"artistId"`
	Album    string `json:"album"`
	Length   int    `json:"length"` // seconds
}

// Genre describes a style of music.
type Genre struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// SongGenre joins a song to a genre.
type SongGenre struct {
	ID      int64 `json:"id"`
	SongID  int64 `json:"songId"`
	GenreID int64 `json:"genreId"`
}

// SongDetail is a song with its artist and genres loaded from current rows.
// Artist is nil when the song references an artist that no longer exists.
type SongDetail struct {
	Song
	Artist *Artist
	Genres []Genre
}

// GenreDetail is a genre with the songs associated to it.
type GenreDetail struct {
	Genre
	Songs []Song
}

// ArtistDetail is an artist with the songs that reference it.
type ArtistDetail struct {
	Artist
	Songs []Song
}
