package request

type CreateReviewRequest struct {
	MovieID string `json:"movie_id" validate:"required,uuid"`
	Text    string `json:"text" validate:"required,notblank"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// UpdateReviewRequest serves PUT and PATCH; absent fields stay unchanged.
type UpdateReviewRequest struct {
	Text   *string `json:"text" validate:"omitnil,notblank"`
	Rating *int    `json:"rating" validate:"omitnil,min=1,max=5"`
}
