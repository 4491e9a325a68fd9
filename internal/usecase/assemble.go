package usecase

import (
	"context"
	"fmt"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/dto/response"

	"github.com/google/uuid"
)

// assembler turns stored records into responses, filling in nested users
// and the derived counts.
type assembler struct {
	repo *repository.Repository
}

func (a assembler) user(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := a.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("load user %s: %w", id, repository.ErrNotFound)
	}
	return user, nil
}

func (a assembler) profile(ctx context.Context, p *entity.Profile) (response.ProfileResponse, error) {
	user, err := a.user(ctx, p.UserID)
	if err != nil {
		return response.ProfileResponse{}, err
	}

	followers, err := a.repo.Profile.CountFollowers(ctx, p.ID)
	if err != nil {
		return response.ProfileResponse{}, err
	}
	following, err := a.repo.Profile.CountFollowing(ctx, p.ID)
	if err != nil {
		return response.ProfileResponse{}, err
	}

	return response.ProfileToResponse(p, user, followers, following), nil
}

func (a assembler) profiles(ctx context.Context, list []*entity.Profile) ([]response.ProfileResponse, error) {
	out := make([]response.ProfileResponse, 0, len(list))
	for _, p := range list {
		resp, err := a.profile(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (a assembler) movie(ctx context.Context, m *entity.Movie) (response.MovieResponse, error) {
	stats, err := a.repo.Movie.Stats(ctx, m.ID)
	if err != nil {
		return response.MovieResponse{}, err
	}
	return response.MovieToResponse(m, stats), nil
}

func (a assembler) review(ctx context.Context, r *entity.Review) (response.ReviewResponse, error) {
	author, err := a.user(ctx, r.UserID)
	if err != nil {
		return response.ReviewResponse{}, err
	}

	movie, err := a.repo.Movie.FindByID(ctx, r.MovieID)
	if err != nil {
		return response.ReviewResponse{}, fmt.Errorf("load movie %s: %w", r.MovieID, err)
	}
	title := ""
	if movie != nil {
		title = movie.Title
	}

	likes, err := a.repo.Like.CountByReviewID(ctx, r.ID)
	if err != nil {
		return response.ReviewResponse{}, err
	}

	return response.ReviewToResponse(r, author, title, likes), nil
}

func (a assembler) reviews(ctx context.Context, list []*entity.Review) ([]response.ReviewResponse, error) {
	out := make([]response.ReviewResponse, 0, len(list))
	for _, r := range list {
		resp, err := a.review(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (a assembler) comment(ctx context.Context, c *entity.Comment) (response.CommentResponse, error) {
	author, err := a.user(ctx, c.AuthorID)
	if err != nil {
		return response.CommentResponse{}, err
	}
	return response.CommentToResponse(c, author), nil
}

func (a assembler) comments(ctx context.Context, list []*entity.Comment) ([]response.CommentResponse, error) {
	out := make([]response.CommentResponse, 0, len(list))
	for _, c := range list {
		resp, err := a.comment(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (a assembler) like(ctx context.Context, l *entity.Like) (response.LikeResponse, error) {
	user, err := a.user(ctx, l.UserID)
	if err != nil {
		return response.LikeResponse{}, err
	}
	return response.LikeToResponse(l, user), nil
}
