package request

type UpdateProfileRequest struct {
	Bio            *string `json:"bio" validate:"omitnil,max=500"`
	ProfilePicture *string `json:"profile_picture" validate:"omitnil,max=2048"`
}
