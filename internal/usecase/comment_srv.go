package usecase

import (
	"context"
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/dto/request"
	"github.com/hamza13-12/flickfeed/internal/dto/response"
	"github.com/hamza13-12/flickfeed/internal/permission"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	GetComments(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetCommentByID(ctx context.Context, id string) (*response.CommentResponse, error)
	GetReviewComments(ctx context.Context, reviewID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	CreateComment(ctx context.Context, actor uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, actor uuid.UUID, action permission.Action, id string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, actor uuid.UUID, action permission.Action, id string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
	asm  assembler
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
		asm:  assembler{repo: repo},
	}
}

func (s *commentService) find(ctx context.Context, id string) (*entity.Comment, error) {
	commentID, err := parseID(id, "comment")
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return nil, storageError("get comment", err)
	}
	if comment == nil {
		return nil, notFound("comment")
	}
	return comment, nil
}

func (s *commentService) respond(ctx context.Context, comment *entity.Comment, op string) (*response.CommentResponse, error) {
	resp, err := s.asm.comment(ctx, comment)
	if err != nil {
		return nil, storageError(op, err)
	}
	return &resp, nil
}

func (s *commentService) GetComments(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	comments, err := s.repo.Comment.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("list comments", err)
	}

	total, err := s.repo.Comment.CountAll(ctx)
	if err != nil {
		return nil, storageError("count comments", err)
	}

	data, err := s.asm.comments(ctx, comments)
	if err != nil {
		return nil, storageError("list comments", err)
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *commentService) GetCommentByID(ctx context.Context, id string) (*response.CommentResponse, error) {
	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, comment, "get comment")
}

func (s *commentService) GetReviewComments(ctx context.Context, reviewID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	id, err := parseID(reviewID, "review")
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get review", err)
	}
	if review == nil {
		return nil, notFound("review")
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("list review comments", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, id)
	if err != nil {
		return nil, storageError("count review comments", err)
	}

	data, err := s.asm.comments(ctx, comments)
	if err != nil {
		return nil, storageError("list review comments", err)
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *commentService) CreateComment(ctx context.Context, actor uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
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

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: actor,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, storageError("create comment", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", review.ID.String()),
		zap.String("author_id", actor.String()))

	return s.respond(ctx, comment, "create comment")
}

func (s *commentService) authorize(actor uuid.UUID, action permission.Action, comment *entity.Comment) error {
	if err := permission.OwnerOrReadOnly(actor, action, comment); err != nil {
		s.log.Warn("Comment access denied",
			zap.String("comment_id", comment.ID.String()),
			zap.String("actor", actor.String()),
			zap.Stringer("action", action))
		return forbidden()
	}
	return nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor uuid.UUID, action permission.Action, id string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, action, comment); err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
		if err := s.repo.Comment.Update(ctx, comment); err != nil {
			return nil, storageError("update comment", err)
		}
		s.log.Info("Comment updated", zap.String("comment_id", comment.ID.String()))
	}

	return s.respond(ctx, comment, "update comment")
}

func (s *commentService) DeleteComment(ctx context.Context, actor uuid.UUID, action permission.Action, id string) error {
	comment, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, action, comment); err != nil {
		return err
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		return storageError("delete comment", err)
	}

	s.log.Info("Comment deleted", zap.String("comment_id", comment.ID.String()))
	return nil
}
