package response

import (
	"math"
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
)

type MovieResponse struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Genre         entity.Genre `json:"genre"`
	ReleaseYear   int          `json:"release_year"`
	Description   string       `json:"description"`
	PosterURL     *string      `json:"poster_url"`
	CreatedAt     time.Time    `json:"created_at"`
	AverageRating float64      `json:"average_rating"`
	ReviewCount   int64        `json:"review_count"`
}

// AverageRating is the mean rating rounded to two decimals, 0 without reviews.
func AverageRating(stats entity.MovieStats) float64 {
	if stats.ReviewCount == 0 {
		return 0
	}
	avg := float64(stats.RatingSum) / float64(stats.ReviewCount)
	return math.Round(avg*100) / 100
}

func MovieToResponse(movie *entity.Movie, stats entity.MovieStats) MovieResponse {
	return MovieResponse{
		ID:            movie.ID.String(),
		Title:         movie.Title,
		Genre:         movie.Genre,
		ReleaseYear:   movie.ReleaseYear,
		Description:   movie.Description,
		PosterURL:     movie.PosterURL,
		CreatedAt:     movie.CreatedAt,
		AverageRating: AverageRating(stats),
		ReviewCount:   stats.ReviewCount,
	}
}
