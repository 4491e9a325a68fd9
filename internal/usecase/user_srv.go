package usecase

import (
	"context"

	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/dto/request"
	"github.com/hamza13-12/flickfeed/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetUsers(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, id string) (*response.UserResponse, error)
	GetMe(ctx context.Context, actor uuid.UUID) (*response.UserResponse, error)
	// GetUserProfile returns the profile nested under a user, 404 when the
	// user or the profile is missing.
	GetUserProfile(ctx context.Context, id string) (*response.ProfileResponse, error)
	// DeleteUser removes the account and everything it owns.
	DeleteUser(ctx context.Context, id string) error
	DeleteMe(ctx context.Context, actor uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
	asm  assembler
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
		asm:  assembler{repo: repo},
	}
}

func (s *userService) GetUsers(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("list users", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, storageError("count users", err)
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*response.UserResponse, error) {
	userID, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	return s.GetMe(ctx, userID)
}

func (s *userService) GetMe(ctx context.Context, actor uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, actor)
	if err != nil {
		return nil, storageError("get user", err)
	}
	if user == nil {
		return nil, notFound("user")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetUserProfile(ctx context.Context, id string) (*response.ProfileResponse, error) {
	userID, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.Profile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storageError("get user profile", err)
	}
	if profile == nil {
		return nil, notFound("profile")
	}

	resp, err := s.asm.profile(ctx, profile)
	if err != nil {
		return nil, storageError("get user profile", err)
	}
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	userID, err := parseID(id, "user")
	if err != nil {
		return err
	}
	return s.DeleteMe(ctx, userID)
}

func (s *userService) DeleteMe(ctx context.Context, actor uuid.UUID) error {
	if err := s.repo.User.Delete(ctx, actor); err != nil {
		return storageError("delete user", err)
	}

	s.log.Info("Account deleted", zap.String("user_id", actor.String()))
	return nil
}
