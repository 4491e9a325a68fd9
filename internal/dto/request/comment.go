package request

type CreateCommentRequest struct {
	ReviewID string `json:"review_id" validate:"required,uuid"`
	Text     string `json:"text" validate:"required,notblank"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text" validate:"omitnil,notblank"`
}
