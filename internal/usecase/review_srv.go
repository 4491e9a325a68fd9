package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/dto/request"
	"github.com/hamza13-12/flickfeed/internal/dto/response"
	"github.com/hamza13-12/flickfeed/internal/permission"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgAlreadyReviewed = "you have already reviewed this movie"

type ReviewService interface {
	GetReviews(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReviewByID(ctx context.Context, id string) (*response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// CreateReview attributes the review to actor. One review per movie per account.
	CreateReview(ctx context.Context, actor uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, actor uuid.UUID, action permission.Action, id string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, actor uuid.UUID, action permission.Action, id string) error

	LikeReview(ctx context.Context, actor uuid.UUID, id string) (*response.LikeResponse, error)
	UnlikeReview(ctx context.Context, actor uuid.UUID, id string) error
}

type reviewService struct {
	repo  *repository.Repository
	likes LikeService
	log   *zap.Logger
	asm   assembler
}

func NewReviewService(repo *repository.Repository, likes LikeService, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		likes: likes,
		log:   log.With(zap.String("service", "review")),
		asm:   assembler{repo: repo},
	}
}

func (s *reviewService) find(ctx context.Context, id string) (*entity.Review, error) {
	reviewID, err := parseID(id, "review")
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, storageError("get review", err)
	}
	if review == nil {
		return nil, notFound("review")
	}
	return review, nil
}

func (s *reviewService) respond(ctx context.Context, review *entity.Review, op string) (*response.ReviewResponse, error) {
	resp, err := s.asm.review(ctx, review)
	if err != nil {
		return nil, storageError(op, err)
	}
	return &resp, nil
}

func (s *reviewService) page(ctx context.Context, reviews []*entity.Review, total int64, req request.PaginatedRequest, op string) (*response.PaginatedResponse[response.ReviewResponse], error) {
	data, err := s.asm.reviews(ctx, reviews)
	if err != nil {
		return nil, storageError(op, err)
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *reviewService) GetReviews(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("list reviews", err)
	}

	total, err := s.repo.Review.CountAll(ctx)
	if err != nil {
		return nil, storageError("count reviews", err)
	}

	return s.page(ctx, reviews, total, req, "list reviews")
}

func (s *reviewService) GetReviewByID(ctx context.Context, id string) (*response.ReviewResponse, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, review, "get review")
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get movie", err)
	}
	if movie == nil {
		return nil, notFound("movie")
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movie reviews",
			zap.Error(err),
			zap.String("movie_id", movieID))
		return nil, storageError("get movie reviews", err)
	}

	total, err := s.repo.Review.CountByMovieID(ctx, id)
	if err != nil {
		return nil, storageError("count movie reviews", err)
	}

	return s.page(ctx, reviews, total, req, "get movie reviews")
}

func (s *reviewService) CreateReview(ctx context.Context, actor uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, validationError(map[string]string{"movie_id": "Must be a valid UUID"})
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, storageError("get movie", err)
	}
	if movie == nil {
		return nil, validationError(map[string]string{"movie_id": "Movie does not exist"})
	}

	existing, err := s.repo.Review.FindByUserAndMovie(ctx, actor, movieID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, storageError("check existing review", err)
	}
	if existing != nil {
		return nil, newError(ErrValidation, msgAlreadyReviewed)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  actor,
		MovieID: movieID,
		Text:    req.Text,
		Rating:  req.Rating,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			s.log.Warn("Concurrent duplicate review",
				zap.String("user_id", actor.String()),
				zap.String("movie_id", movieID.String()))
			return nil, newError(ErrConflict, msgAlreadyReviewed)
		}
		return nil, storageError("create review", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", actor.String()),
		zap.String("movie_id", movieID.String()),
		zap.Int("rating", review.Rating),
	)

	return s.respond(ctx, review, "create review")
}

func (s *reviewService) authorize(actor uuid.UUID, action permission.Action, review *entity.Review) error {
	if err := permission.OwnerOrReadOnly(actor, action, review); err != nil {
		s.log.Warn("Review access denied",
			zap.String("review_id", review.ID.String()),
			zap.String("actor", actor.String()),
			zap.Stringer("action", action))
		return forbidden()
	}
	return nil
}

func (s *reviewService) UpdateReview(ctx context.Context, actor uuid.UUID, action permission.Action, id string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, action, review); err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, storageError("update review", err)
	}

	s.log.Info("Review updated", zap.String("review_id", review.ID.String()))
	return s.respond(ctx, review, "update review")
}

func (s *reviewService) DeleteReview(ctx context.Context, actor uuid.UUID, action permission.Action, id string) error {
	review, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, action, review); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		return storageError("delete review", err)
	}

	s.log.Info("Review deleted", zap.String("review_id", review.ID.String()))
	return nil
}

func (s *reviewService) LikeReview(ctx context.Context, actor uuid.UUID, id string) (*response.LikeResponse, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.likes.CreateLike(ctx, actor, &request.CreateLikeRequest{ReviewID: review.ID.String()})
}

func (s *reviewService) UnlikeReview(ctx context.Context, actor uuid.UUID, id string) error {
	review, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	like, err := s.repo.Like.FindByUserAndReview(ctx, actor, review.ID)
	if err != nil {
		return storageError("find like", err)
	}
	if like == nil {
		return newError(ErrValidation, "you have not liked this review")
	}

	if err := s.repo.Like.Delete(ctx, like.ID); err != nil {
		return storageError("unlike review", err)
	}

	s.log.Info("Review unliked",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", actor.String()))
	return nil
}
