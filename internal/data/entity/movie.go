package entity

import (
	"strings"
)

type Genre string

const (
	GenreAction   Genre = "ACTION"
	GenreComedy   Genre = "COMEDY"
	GenreDrama    Genre = "DRAMA"
	GenreFantasy  Genre = "FANTASY"
	GenreHorror   Genre = "HORROR"
	GenreMystery  Genre = "MYSTERY"
	GenreRomance  Genre = "ROMANCE"
	GenreThriller Genre = "THRILLER"
	GenreSciFi    Genre = "SCI_FI"
)

var Genres = []Genre{
	GenreAction, GenreComedy, GenreDrama, GenreFantasy, GenreHorror,
	GenreMystery, GenreRomance, GenreThriller, GenreSciFi,
}

// ParseGenre matches s against the known genres ignoring case.
func ParseGenre(s string) (Genre, bool) {
	candidate := Genre(strings.ToUpper(strings.TrimSpace(s)))
	for _, g := range Genres {
		if g == candidate {
			return g, true
		}
	}
	return "", false
}

type Movie struct {
	Base
	Title       string  `db:"title"`
	Genre       Genre   `db:"genre"`
	ReleaseYear int     `db:"release_year"`
	Description string  `db:"description"`
	PosterURL   *string `db:"poster_url"`
}

// MovieStats holds the aggregate over a movie's reviews.
type MovieStats struct {
	RatingSum   int64
	ReviewCount int64
}

// MovieFilter narrows a movie listing. Zero values mean no constraint and
// set fields combine with AND.
type MovieFilter struct {
	Title       string
	Genre       Genre
	ReleaseYear *int
}

func (f MovieFilter) Match(m *Movie) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Genre != "" && m.Genre != f.Genre {
		return false
	}
	if f.ReleaseYear != nil && m.ReleaseYear != *f.ReleaseYear {
		return false
	}
	return true
}
