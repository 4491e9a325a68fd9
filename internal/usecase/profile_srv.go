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

type ProfileService interface {
	GetProfiles(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.ProfileResponse], error)
	GetProfileByID(ctx context.Context, id string) (*response.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actor uuid.UUID, action permission.Action, id string, req *request.UpdateProfileRequest) (*response.ProfileResponse, error)

	// Follow is idempotent. Following yourself is rejected.
	Follow(ctx context.Context, actor uuid.UUID, id string) (*response.ProfileResponse, error)
	// Unfollow succeeds whether or not the edge existed.
	Unfollow(ctx context.Context, actor uuid.UUID, id string) (*response.ProfileResponse, error)
	GetFollowers(ctx context.Context, id string, req request.PaginatedRequest) (*response.PaginatedResponse[response.ProfileResponse], error)
	GetFollowing(ctx context.Context, id string, req request.PaginatedRequest) (*response.PaginatedResponse[response.ProfileResponse], error)

	// Feed lists reviews by the accounts the actor follows, newest first.
	Feed(ctx context.Context, actor uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
	asm  assembler
}

func NewProfileService(repo *repository.Repository, log *zap.Logger) ProfileService {
	return &profileService{
		repo: repo,
		log:  log.With(zap.String("service", "profile")),
		asm:  assembler{repo: repo},
	}
}

func (s *profileService) find(ctx context.Context, id string) (*entity.Profile, error) {
	profileID, err := parseID(id, "profile")
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.Profile.FindByID(ctx, profileID)
	if err != nil {
		return nil, storageError("get profile", err)
	}
	if profile == nil {
		return nil, notFound("profile")
	}
	return profile, nil
}

func (s *profileService) actorProfile(ctx context.Context, actor uuid.UUID) (*entity.Profile, error) {
	profile, err := s.repo.Profile.FindByUserID(ctx, actor)
	if err != nil {
		return nil, storageError("get own profile", err)
	}
	if profile == nil {
		return nil, notFound("profile")
	}
	return profile, nil
}

func (s *profileService) respond(ctx context.Context, profile *entity.Profile, op string) (*response.ProfileResponse, error) {
	resp, err := s.asm.profile(ctx, profile)
	if err != nil {
		return nil, storageError(op, err)
	}
	return &resp, nil
}

func (s *profileService) GetProfiles(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.ProfileResponse], error) {
	profiles, err := s.repo.Profile.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("list profiles", err)
	}

	total, err := s.repo.Profile.CountAll(ctx)
	if err != nil {
		return nil, storageError("count profiles", err)
	}

	data, err := s.asm.profiles(ctx, profiles)
	if err != nil {
		return nil, storageError("list profiles", err)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *profileService) GetProfileByID(ctx context.Context, id string) (*response.ProfileResponse, error) {
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, profile, "get profile")
}

func (s *profileService) UpdateProfile(ctx context.Context, actor uuid.UUID, action permission.Action, id string, req *request.UpdateProfileRequest) (*response.ProfileResponse, error) {
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := permission.OwnerOrReadOnly(actor, action, profile); err != nil {
		s.log.Warn("Profile update denied",
			zap.String("profile_id", profile.ID.String()),
			zap.String("actor", actor.String()),
			zap.Stringer("action", action))
		return nil, forbidden()
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.ProfilePicture != nil {
		if *req.ProfilePicture == "" {
			profile.ProfilePicture = nil
		} else {
			profile.ProfilePicture = req.ProfilePicture
		}
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.Profile.Update(ctx, profile); err != nil {
		return nil, storageError("update profile", err)
	}

	s.log.Info("Profile updated", zap.String("profile_id", profile.ID.String()))
	return s.respond(ctx, profile, "update profile")
}

func (s *profileService) Follow(ctx context.Context, actor uuid.UUID, id string) (*response.ProfileResponse, error) {
	target, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	own, err := s.actorProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	if own.ID == target.ID {
		return nil, newError(ErrValidation, "you cannot follow yourself")
	}

	created, err := s.repo.Profile.Follow(ctx, own.ID, target.ID)
	if err != nil {
		return nil, storageError("follow", err)
	}

	if created {
		s.log.Info("Profile followed",
			zap.String("follower_id", own.ID.String()),
			zap.String("following_id", target.ID.String()))
	}

	return s.respond(ctx, target, "follow")
}

func (s *profileService) Unfollow(ctx context.Context, actor uuid.UUID, id string) (*response.ProfileResponse, error) {
	target, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	own, err := s.actorProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	removed, err := s.repo.Profile.Unfollow(ctx, own.ID, target.ID)
	if err != nil {
		return nil, storageError("unfollow", err)
	}

	if removed {
		s.log.Info("Profile unfollowed",
			zap.String("follower_id", own.ID.String()),
			zap.String("following_id", target.ID.String()))
	}

	return s.respond(ctx, target, "unfollow")
}

func (s *profileService) GetFollowers(ctx context.Context, id string, req request.PaginatedRequest) (*response.PaginatedResponse[response.ProfileResponse], error) {
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Profile.FindFollowers(ctx, profile.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("list followers", err)
	}
	total, err := s.repo.Profile.CountFollowers(ctx, profile.ID)
	if err != nil {
		return nil, storageError("count followers", err)
	}

	data, err := s.asm.profiles(ctx, list)
	if err != nil {
		return nil, storageError("list followers", err)
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *profileService) GetFollowing(ctx context.Context, id string, req request.PaginatedRequest) (*response.PaginatedResponse[response.ProfileResponse], error) {
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Profile.FindFollowing(ctx, profile.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("list following", err)
	}
	total, err := s.repo.Profile.CountFollowing(ctx, profile.ID)
	if err != nil {
		return nil, storageError("count following", err)
	}

	data, err := s.asm.profiles(ctx, list)
	if err != nil {
		return nil, storageError("list following", err)
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *profileService) Feed(ctx context.Context, actor uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	own, err := s.actorProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindFeed(ctx, own.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, storageError("feed", err)
	}

	total, err := s.repo.Review.CountFeed(ctx, own.ID)
	if err != nil {
		return nil, storageError("count feed", err)
	}

	data, err := s.asm.reviews(ctx, reviews)
	if err != nil {
		return nil, storageError("feed", err)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}
