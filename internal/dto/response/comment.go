package response

import (
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
)

type CommentResponse struct {
	ID        string       `json:"id"`
	ReviewID  string       `json:"review_id"`
	Author    UserResponse `json:"author"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
}

func CommentToResponse(comment *entity.Comment, author *entity.User) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		ReviewID:  comment.ReviewID.String(),
		Author:    UserToResponse(author),
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}
