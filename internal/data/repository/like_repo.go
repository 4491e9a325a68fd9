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

type LikeRepository interface {
	Create(ctx context.Context, like *entity.Like) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Like, error)
	FindByUserAndReview(ctx context.Context, userID, reviewID uuid.UUID) (*entity.Like, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Like, error)
	CountAll(ctx context.Context) (int64, error)
	CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type likeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLikeRepository(db database.PgxIface, log *zap.Logger) LikeRepository {
	return &likeRepository{
		db:  db,
		log: log.With(zap.String("repository", "like")),
	}
}

const likeColumns = `id, user_id, review_id, created_at`

func scanLike(row pgx.Row) (*entity.Like, error) {
	var l entity.Like
	if err := row.Scan(&l.ID, &l.UserID, &l.ReviewID, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	query := `
		INSERT INTO likes (id, user_id, review_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.Exec(ctx, query, like.ID, like.UserID, like.ReviewID, like.CreatedAt); err != nil {
		r.log.Error("Failed to create like",
			zap.Error(err),
			zap.String("user_id", like.UserID.String()),
			zap.String("review_id", like.ReviewID.String()),
		)
		return fmt.Errorf("create like on review %s: %w", like.ReviewID, mapError(err))
	}
	return nil
}

func (r *likeRepository) findOne(ctx context.Context, where string, args ...any) (*entity.Like, error) {
	query := `SELECT ` + likeColumns + ` FROM likes WHERE ` + where

	like, err := scanLike(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find like", zap.Error(err), zap.String("where", where))
		return nil, fmt.Errorf("find like: %w", err)
	}
	return like, nil
}

func (r *likeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Like, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *likeRepository) FindByUserAndReview(ctx context.Context, userID, reviewID uuid.UUID) (*entity.Like, error) {
	return r.findOne(ctx, "user_id = $1 AND review_id = $2", userID, reviewID)
}

func (r *likeRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Like, error) {
	query := `SELECT ` + likeColumns + `
		FROM likes
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list likes", zap.Error(err))
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	likes := make([]*entity.Like, 0)
	for rows.Next() {
		like, err := scanLike(rows)
		if err != nil {
			r.log.Error("Failed to scan like row", zap.Error(err))
			return nil, fmt.Errorf("scan like row: %w", err)
		}
		likes = append(likes, like)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like rows: %w", err)
	}
	return likes, nil
}

func (r *likeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (r *likeRepository) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE review_id = $1`, reviewID).Scan(&count); err != nil {
		r.log.Error("Failed to count likes",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return 0, fmt.Errorf("count likes of review %s: %w", reviewID, err)
	}
	return count, nil
}

func (r *likeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete like",
			zap.Error(err),
			zap.String("like_id", id.String()),
		)
		return fmt.Errorf("delete like %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete like %s: %w", id, ErrNotFound)
	}
	return nil
}
