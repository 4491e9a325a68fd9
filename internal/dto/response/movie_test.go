package response

import (
	"testing"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name  string
		stats entity.MovieStats
		want  float64
	}{
		{"no reviews", entity.MovieStats{}, 0},
		{"four and two", entity.MovieStats{RatingSum: 6, ReviewCount: 2}, 3.0},
		{"single", entity.MovieStats{RatingSum: 5, ReviewCount: 1}, 5.0},
		{"rounds to two decimals", entity.MovieStats{RatingSum: 10, ReviewCount: 3}, 3.33},
		{"rounds half up", entity.MovieStats{RatingSum: 14, ReviewCount: 3}, 4.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageRating(tt.stats); got != tt.want {
				t.Errorf("AverageRating(%+v) = %v, want %v", tt.stats, got, tt.want)
			}
		})
	}
}

func TestNewPaginatedResponseNeverNil(t *testing.T) {
	resp := NewPaginatedResponse[MovieResponse](nil, 1, 10, 0)
	if resp.Data == nil {
		t.Fatal("Data is nil, want empty slice")
	}
	if resp.Pagination.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", resp.Pagination.TotalPages)
	}

	resp = NewPaginatedResponse([]MovieResponse{{}}, 2, 10, 21)
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.Pagination.TotalPages)
	}
}
