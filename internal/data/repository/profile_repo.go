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

type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Profile, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, profile *entity.Profile) error

	// Follow graph. Follow reports whether a new edge was stored and
	// Unfollow whether one was removed.
	Follow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, profileID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, profileID uuid.UUID) (int64, error)
	FindFollowers(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Profile, error)
	FindFollowing(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Profile, error)
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

const profileColumns = `p.id, p.user_id, p.bio, p.profile_picture, p.created_at, p.updated_at`

const insertProfileQuery = `
		INSERT INTO profiles (id, user_id, bio, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

func profileArgs(p *entity.Profile) []any {
	return []any{p.ID, p.UserID, p.Bio, p.ProfilePicture, p.CreatedAt, p.UpdatedAt}
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Bio, &p.ProfilePicture, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) findOne(ctx context.Context, where string, arg uuid.UUID) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p WHERE ` + where

	profile, err := scanProfile(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile",
			zap.Error(err),
			zap.String("where", where),
			zap.String("arg", arg.String()),
		)
		return nil, fmt.Errorf("find profile %s: %w", arg, err)
	}
	return profile, nil
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return r.findOne(ctx, "p.id = $1", id)
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return r.findOne(ctx, "p.user_id = $1", userID)
}

func (r *profileRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list profiles", zap.Error(err))
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*entity.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			r.log.Error("Failed to scan profile row", zap.Error(err))
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *profileRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count profiles", zap.Error(err))
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return total, nil
}

func (r *profileRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM profiles`)
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	query := `
		UPDATE profiles
		SET bio = $2, profile_picture = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.Bio,
		profile.ProfilePicture,
		profile.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update profile",
			zap.Error(err),
			zap.String("profile_id", profile.ID.String()),
		)
		return fmt.Errorf("update profile %s: %w", profile.ID, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update profile %s: %w", profile.ID, ErrNotFound)
	}
	return nil
}

func (r *profileRepository) Follow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO profile_follows (follower_id, following_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, followerID, followingID)
	if err != nil {
		r.log.Error("Failed to follow profile",
			zap.Error(err),
			zap.String("follower_id", followerID.String()),
			zap.String("following_id", followingID.String()),
		)
		return false, fmt.Errorf("follow %s -> %s: %w", followerID, followingID, mapError(err))
	}
	return result.RowsAffected() > 0, nil
}

func (r *profileRepository) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	query := `DELETE FROM profile_follows WHERE follower_id = $1 AND following_id = $2`

	result, err := r.db.Exec(ctx, query, followerID, followingID)
	if err != nil {
		r.log.Error("Failed to unfollow profile",
			zap.Error(err),
			zap.String("follower_id", followerID.String()),
			zap.String("following_id", followingID.String()),
		)
		return false, fmt.Errorf("unfollow %s -> %s: %w", followerID, followingID, err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *profileRepository) CountFollowers(ctx context.Context, profileID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM profile_follows WHERE following_id = $1`, profileID)
}

func (r *profileRepository) CountFollowing(ctx context.Context, profileID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM profile_follows WHERE follower_id = $1`, profileID)
}

func (r *profileRepository) FindFollowers(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		JOIN profile_follows f ON f.follower_id = p.id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, profileID, limit, offset)
}

func (r *profileRepository) FindFollowing(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		JOIN profile_follows f ON f.following_id = p.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, profileID, limit, offset)
}
