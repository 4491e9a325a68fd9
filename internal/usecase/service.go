package usecase

import (
	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Profile ProfileService
	Movie   MovieService
	Review  ReviewService
	Comment CommentService
	Like    LikeService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	likes := NewLikeService(repo, log)
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, log),
		Profile: NewProfileService(repo, log),
		Movie:   NewMovieService(repo, log),
		Review:  NewReviewService(repo, likes, log),
		Comment: NewCommentService(repo, log),
		Like:    likes,
	}
}
