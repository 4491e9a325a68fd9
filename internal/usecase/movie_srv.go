package usecase

import (
	"context"
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/dto/request"
	"github.com/hamza13-12/flickfeed/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, filter entity.MovieFilter, req request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, id string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, id string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	// DeleteMovie also removes the movie's reviews and their comments and likes.
	DeleteMovie(ctx context.Context, id string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
	asm  assembler
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
		asm:  assembler{repo: repo},
	}
}

func (s *movieService) GetMovies(ctx context.Context, filter entity.MovieFilter, req request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, storageError("get movies", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		return nil, storageError("count movies", err)
	}

	data := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		resp, err := s.asm.movie(ctx, movie)
		if err != nil {
			return nil, storageError("get movies", err)
		}
		data = append(data, resp)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *movieService) find(ctx context.Context, id string) (*entity.Movie, error) {
	movieID, err := parseID(id, "movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, storageError("get movie", err)
	}
	if movie == nil {
		return nil, notFound("movie")
	}
	return movie, nil
}

func (s *movieService) respond(ctx context.Context, movie *entity.Movie, op string) (*response.MovieResponse, error) {
	resp, err := s.asm.movie(ctx, movie)
	if err != nil {
		return nil, storageError(op, err)
	}
	return &resp, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id string) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, movie, "get movie")
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Genre:       entity.Genre(req.Genre),
		ReleaseYear: req.ReleaseYear,
		Description: req.Description,
		PosterURL:   req.PosterURL,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, storageError("create movie", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title))

	return s.respond(ctx, movie, "create movie")
}

func (s *movieService) UpdateMovie(ctx context.Context, id string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Genre != nil {
		movie.Genre = entity.Genre(*req.Genre)
	}
	if req.ReleaseYear != nil {
		movie.ReleaseYear = *req.ReleaseYear
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.PosterURL != nil {
		if *req.PosterURL == "" {
			movie.PosterURL = nil
		} else {
			movie.PosterURL = req.PosterURL
		}
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, storageError("update movie", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movie.ID.String()))
	return s.respond(ctx, movie, "update movie")
}

func (s *movieService) DeleteMovie(ctx context.Context, id string) error {
	movie, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Movie.Delete(ctx, movie.ID); err != nil {
		return storageError("delete movie", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movie.ID.String()))
	return nil
}
