package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
	"github.com/hamza13-12/flickfeed/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error)
	CountAll(ctx context.Context) (int64, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Feed returns reviews written by accounts whose profiles are followed
	// by profileID, newest first.
	FindFeed(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountFeed(ctx context.Context, profileID uuid.UUID) (int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `r.id, r.user_id, r.movie_id, r.text, r.rating, r.created_at`

const feedJoin = `
		FROM reviews r
		JOIN profiles author ON author.user_id = r.user_id
		JOIN profile_follows f ON f.following_id = author.id
		WHERE f.follower_id = $1`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.Text,
		&review.Rating,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, movie_id, text, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.MovieID,
		review.Text,
		review.Rating,
		review.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
		return fmt.Errorf("create review for movie %s by user %s: %w",
			review.MovieID, review.UserID, mapError(err))
	}

	return nil
}

func (r *reviewRepository) findOne(ctx context.Context, where string, args ...any) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews r WHERE ` + where

	review, err := scanReview(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review",
			zap.Error(err),
			zap.String("where", where),
		)
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, "r.id = $1", id)
}

func (r *reviewRepository) FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, "r.user_id = $1 AND r.movie_id = $2", userID, movieID)
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*entity.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

func (r *reviewRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews r
		ORDER BY r.created_at DESC, r.id
		LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *reviewRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews`)
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.movie_id = $1
		ORDER BY r.created_at DESC, r.id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, movieID, limit, offset)
}

func (r *reviewRepository) CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews WHERE movie_id = $1`, movieID)
}

func (r *reviewRepository) FindFeed(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + feedJoin + `
		ORDER BY r.created_at DESC, r.id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, profileID, limit, offset)
}

func (r *reviewRepository) CountFeed(ctx context.Context, profileID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*)`+feedJoin, profileID)
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET text = $2, rating = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, review.ID, review.Text, review.Rating)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update review %s: %w", review.ID, ErrNotFound)
	}

	return nil
}

// Delete cascades to the review's comments and likes.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete review %s: %w", id, ErrNotFound)
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}
