package repository

import (
	"github.com/hamza13-12/flickfeed/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Profile ProfileRepository
	Movie   MovieRepository
	Review  ReviewRepository
	Comment CommentRepository
	Like    LikeRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Profile: NewProfileRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Review:  NewReviewRepository(db, log),
		Comment: NewCommentRepository(db, log),
		Like:    NewLikeRepository(db, log),
	}
}
