package response

import (
	"github.com/hamza13-12/flickfeed/internal/data/entity"
)

type ProfileResponse struct {
	ID             string       `json:"id"`
	User           UserResponse `json:"user"`
	Bio            string       `json:"bio"`
	ProfilePicture *string      `json:"profile_picture"`
	FollowerCount  int64        `json:"follower_count"`
	FollowingCount int64        `json:"following_count"`
}

func ProfileToResponse(profile *entity.Profile, user *entity.User, followers, following int64) ProfileResponse {
	return ProfileResponse{
		ID:             profile.ID.String(),
		User:           UserToResponse(user),
		Bio:            profile.Bio,
		ProfilePicture: profile.ProfilePicture,
		FollowerCount:  followers,
		FollowingCount: following,
	}
}
