package response

import (
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
)

type ReviewResponse struct {
	ID         string       `json:"id"`
	MovieID    string       `json:"movie_id"`
	MovieTitle string       `json:"movie_title"`
	User       UserResponse `json:"user"`
	Text       string       `json:"text"`
	Rating     int          `json:"rating"`
	LikesCount int64        `json:"likes_count"`
	CreatedAt  time.Time    `json:"created_at"`
}

func ReviewToResponse(review *entity.Review, author *entity.User, movieTitle string, likes int64) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		MovieID:    review.MovieID.String(),
		MovieTitle: movieTitle,
		User:       UserToResponse(author),
		Text:       review.Text,
		Rating:     review.Rating,
		LikesCount: likes,
		CreatedAt:  review.CreatedAt,
	}
}
