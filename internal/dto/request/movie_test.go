package request

import (
	"net/url"
	"testing"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
)

func TestMovieFilterFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantTitle string
		wantGenre entity.Genre
		wantYear  int
		wantErr   string
	}{
		{name: "empty", query: ""},
		{name: "title", query: "title=Matrix", wantTitle: "Matrix"},
		{name: "genre case insensitive", query: "genre=comedy", wantGenre: entity.GenreComedy},
		{name: "sci fi", query: "genre=Sci_Fi", wantGenre: entity.GenreSciFi},
		{name: "release_year", query: "release_year=1999", wantYear: 1999},
		{name: "year alias", query: "year=2001", wantYear: 2001},
		{name: "release_year wins over year", query: "release_year=1999&year=2001", wantYear: 1999},
		{name: "unknown genre", query: "genre=WESTERN", wantErr: "genre"},
		{name: "bad year", query: "year=abc", wantErr: "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}

			filter, errs := MovieFilterFromQuery(q)
			if tt.wantErr != "" {
				if _, ok := errs[tt.wantErr]; !ok {
					t.Fatalf("errs = %v, want key %q", errs, tt.wantErr)
				}
				return
			}
			if errs != nil {
				t.Fatalf("unexpected errs: %v", errs)
			}

			if filter.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", filter.Title, tt.wantTitle)
			}
			if filter.Genre != tt.wantGenre {
				t.Errorf("Genre = %q, want %q", filter.Genre, tt.wantGenre)
			}
			gotYear := 0
			if filter.ReleaseYear != nil {
				gotYear = *filter.ReleaseYear
			}
			if gotYear != tt.wantYear {
				t.Errorf("ReleaseYear = %d, want %d", gotYear, tt.wantYear)
			}
		})
	}
}

func TestPaginationFromQuery(t *testing.T) {
	q, _ := url.ParseQuery("page=3&per_page=500")
	p := PaginationFromQuery(q)
	if p.CurrentPage() != 3 {
		t.Errorf("CurrentPage = %d, want 3", p.CurrentPage())
	}
	if p.Limit() != MaxPerPage {
		t.Errorf("Limit = %d, want %d", p.Limit(), MaxPerPage)
	}
	if p.Offset() != 200 {
		t.Errorf("Offset = %d, want 200", p.Offset())
	}

	q, _ = url.ParseQuery("page=zero&per_page=-1")
	p = PaginationFromQuery(q)
	if p.CurrentPage() != 1 || p.Limit() != DefaultPerPage || p.Offset() != 0 {
		t.Errorf("defaults not applied: %+v", p)
	}
}
