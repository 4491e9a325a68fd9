package request

type CreateLikeRequest struct {
	ReviewID string `json:"review_id" validate:"required,uuid"`
}
