package request

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
)

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Genre       string  `json:"genre" validate:"required,oneof=ACTION COMEDY DRAMA FANTASY HORROR MYSTERY ROMANCE THRILLER SCI_FI"`
	ReleaseYear int     `json:"release_year" validate:"required"`
	Description string  `json:"description" validate:"required,notblank"`
	PosterURL   *string `json:"poster_url" validate:"omitnil,max=2048"`
}

// Normalize upper-cases the genre so "comedy" and "Comedy" are accepted.
func (m *MovieRequest) Normalize() {
	m.Genre = strings.ToUpper(strings.TrimSpace(m.Genre))
	m.Title = strings.TrimSpace(m.Title)
}

type MovieUpdateRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=255"`
	Genre       *string `json:"genre" validate:"omitnil,oneof=ACTION COMEDY DRAMA FANTASY HORROR MYSTERY ROMANCE THRILLER SCI_FI"`
	ReleaseYear *int    `json:"release_year" validate:"omitnil"`
	Description *string `json:"description" validate:"omitnil,notblank"`
	PosterURL   *string `json:"poster_url" validate:"omitnil,max=2048"`
}

func (m *MovieUpdateRequest) Normalize() {
	if m.Genre != nil {
		g := strings.ToUpper(strings.TrimSpace(*m.Genre))
		m.Genre = &g
	}
	if m.Title != nil {
		t := strings.TrimSpace(*m.Title)
		m.Title = &t
	}
}

// MovieFilterFromQuery parses title, genre and release_year (or its alias
// year). The returned map is non-nil when a parameter is malformed.
func MovieFilterFromQuery(query url.Values) (entity.MovieFilter, map[string]string) {
	var filter entity.MovieFilter
	errs := make(map[string]string)

	filter.Title = strings.TrimSpace(query.Get("title"))

	if raw := query.Get("genre"); raw != "" {
		genre, ok := entity.ParseGenre(raw)
		if !ok {
			names := make([]string, len(entity.Genres))
			for i, g := range entity.Genres {
				names[i] = string(g)
			}
			errs["genre"] = "Must be one of: " + strings.Join(names, ", ")
		} else {
			filter.Genre = genre
		}
	}

	rawYear := query.Get("release_year")
	field := "release_year"
	if rawYear == "" {
		rawYear = query.Get("year")
		field = "year"
	}
	if rawYear != "" {
		year, err := strconv.Atoi(strings.TrimSpace(rawYear))
		if err != nil {
			errs[field] = "Must be an integer"
		} else {
			filter.ReleaseYear = &year
		}
	}

	if len(errs) > 0 {
		return entity.MovieFilter{}, errs
	}
	return filter, nil
}
