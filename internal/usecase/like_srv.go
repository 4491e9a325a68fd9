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

const msgAlreadyLiked = "you have already liked this review"

type LikeService interface {
	GetLikes(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.LikeResponse], error)
	GetLikeByID(ctx context.Context, id string) (*response.LikeResponse, error)
	// CreateLike rejects a second like of the same review by the same account.
	CreateLike(ctx context.Context, actor uuid.UUID, req *request.CreateLikeRequest) (*response.LikeResponse, error)
	DeleteLike(ctx context.Context, actor uuid.UUID, action permission.Action, id string) error
}

type likeService struct {
	repo *repository.Repository
	log  *zap.Logger
	asm  assembler
}

func NewLikeService(repo *repository.Repository, log *zap.Logger) LikeService {
	return &likeService{
		repo: repo,
		log:  log.With(zap.String("service", "like")),
		asm:  assembler{repo: repo},
	}
}

func (s *likeService) find(ctx context.Context, id string) (*entity.Like, error) {
	likeID, err := parseID(id, "like")
	if err != nil {
		return nil, err
	}

	like, err := s.repo.Like.FindByID(ctx, likeID)
	if err != nil {
		return nil, storageError("get like", err)
	}
	if like == nil {
		return nil, notFound("like")
	}
	return like, nil
}

func (s *likeService) respond(ctx context.Context, like *entity.Like, op string) (*response.LikeResponse, error) {
	resp, err := s.asm.like(ctx, like)
	if err != nil {
		return nil, storageError(op, err)
	}
	return &resp, nil
}

func (s *likeService) GetLikes(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.LikeResponse], error) {
	likes, err := s.repo.Like.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("list likes", err)
	}

	total, err := s.repo.Like.CountAll(ctx)
	if err != nil {
		return nil, storageError("count likes", err)
	}

	data := make([]response.LikeResponse, 0, len(likes))
	for _, l := range likes {
		resp, err := s.asm.like(ctx, l)
		if err != nil {
			return nil, storageError("list likes", err)
		}
		data = append(data, resp)
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *likeService) GetLikeByID(ctx context.Context, id string) (*response.LikeResponse, error) {
	like, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, like, "get like")
}

func (s *likeService) CreateLike(ctx context.Context, actor uuid.UUID, req *request.CreateLikeRequest) (*response.LikeResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	reviewID, err := uuid.Parse(req.ReviewID)
	if err != nil {
		return nil, validationError(map[string]string{"review_id": "Must be a valid UUID"})
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, storageError("get review", err)
	}
	if review == nil {
		return nil, validationError(map[string]string{"review_id": "Review does not exist"})
	}

	existing, err := s.repo.Like.FindByUserAndReview(ctx, actor, reviewID)
	if err != nil {
		return nil, storageError("check existing like", err)
	}
	if existing != nil {
		return nil, newError(ErrValidation, msgAlreadyLiked)
	}

	like := &entity.Like{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:   actor,
		ReviewID: reviewID,
	}

	if err := s.repo.Like.Create(ctx, like); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, newError(ErrConflict, msgAlreadyLiked)
		}
		return nil, storageError("create like", err)
	}

	s.log.Info("Review liked",
		zap.String("like_id", like.ID.String()),
		zap.String("review_id", reviewID.String()),
		zap.String("user_id", actor.String()))

	return s.respond(ctx, like, "create like")
}

func (s *likeService) DeleteLike(ctx context.Context, actor uuid.UUID, action permission.Action, id string) error {
	like, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := permission.OwnerOrReadOnly(actor, action, like); err != nil {
		s.log.Warn("Like delete denied",
			zap.String("like_id", like.ID.String()),
			zap.String("actor", actor.String()),
			zap.Stringer("action", action))
		return forbidden()
	}

	if err := s.repo.Like.Delete(ctx, like.ID); err != nil {
		return storageError("delete like", err)
	}

	s.log.Info("Like deleted", zap.String("like_id", like.ID.String()))
	return nil
}
