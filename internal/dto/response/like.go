package response

import (
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
)

type LikeResponse struct {
	ID        string       `json:"id"`
	ReviewID  string       `json:"review_id"`
	User      UserResponse `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

func LikeToResponse(like *entity.Like, user *entity.User) LikeResponse {
	return LikeResponse{
		ID:        like.ID.String(),
		ReviewID:  like.ReviewID.String(),
		User:      UserToResponse(user),
		CreatedAt: like.CreatedAt,
	}
}
