package store

import "tominotrumpets/internal/models"

// Seed rows written once when the catalog schema is first created. The SQL
// migration 000002_seed_catalog carries the same data for Postgres.
var (
	SeedArtists = []models.Artist{
		{
			ID:   1,
			Name: "Bruce Springsteen",
			Age:  74,
			Bio:  `Bruce Frederick Joseph Springsteen (born September 23, 1949) is an American rock singer, songwriter and guitarist. Nicknamed "the Boss", he has released 21 studio albums during a career spanning six decades, most of which feature his backing band, the E Street Band`,
		},
		{
			ID:   2,
			Name: "Macklemore",
			Age:  40,
			Bio:  "Benjamin Hammond Haggerty, better known by his stage name Macklemore, is an American rapper. A native of Seattle, Washington, he started his career in 2000 as an independent artist and released three works: Open Your Eyes (2000), The Language of My World (2005) and The Unplanned Mixtape (2009). He rose to international success when he collaborated with producer Ryan Lewis as the duo Macklemore & Ryan Lewis (2009–2016).",
		},
	}

	SeedGenres = []models.Genre{
		{ID: 1, Description: "American Rock"},
		{ID: 2, Description: "Hip hop"},
	}

	SeedSongs = []models.Song{
		{ID: 1, Title: "Born in the U.S.A.", ArtistID: 1, Album: "Born in the U.S.A.", Length: 437},
		{ID: 2, Title: "Good Old Days", ArtistID: 2, Album: "Gemini", Length: 401},
	}

	SeedSongGenres = []models.SongGenre{
		{ID: 1, SongID: 1, GenreID: 1},
		{ID: 2, SongID: 2, GenreID: 2},
	}
)
