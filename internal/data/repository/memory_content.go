package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"

	"github.com/google/uuid"
)

// ---- movies ----

type memMovieRepo struct{ s *memoryStore }

func checkMovie(movie *entity.Movie) error {
	if strings.TrimSpace(movie.Title) == "" {
		return violation(ErrCheckViolation, "movies_title_check")
	}
	if _, ok := entity.ParseGenre(string(movie.Genre)); !ok {
		return violation(ErrCheckViolation, "movies_genre_check")
	}
	return nil
}

func (r *memMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[movie.ID]; ok {
		return fmt.Errorf("create movie: %w", violation(ErrUniqueViolation, "movies_pkey"))
	}
	if err := checkMovie(movie); err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	r.s.movies[movie.ID] = clone(movie)
	r.s.track(movie.ID)
	return nil
}

func (r *memMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if m, ok := r.s.movies[id]; ok {
		return clone(m), nil
	}
	return nil, nil
}

func (r *memMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.movies[movie.ID]
	if !ok {
		return fmt.Errorf("update movie %s: %w", movie.ID, ErrNotFound)
	}
	if err := checkMovie(movie); err != nil {
		return fmt.Errorf("update movie %s: %w", movie.ID, err)
	}

	updated := clone(movie)
	updated.CreatedAt = existing.CreatedAt
	r.s.movies[movie.ID] = updated
	return nil
}

func (r *memMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return fmt.Errorf("delete movie %s: %w", id, ErrNotFound)
	}
	r.s.deleteMovieLocked(id)
	return nil
}

func (r *memMovieRepo) filtered(filter entity.MovieFilter) []*entity.Movie {
	movies := make([]*entity.Movie, 0)
	for _, m := range r.s.movies {
		if filter.Match(m) {
			movies = append(movies, m)
		}
	}
	return movies
}

func (r *memMovieRepo) FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	movies := r.filtered(filter)
	newestFirst(r.s, movies, func(m *entity.Movie) (uuid.UUID, time.Time) { return m.ID, m.CreatedAt })
	return window(movies, limit, offset), nil
}

func (r *memMovieRepo) CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *memMovieRepo) Stats(ctx context.Context, movieID uuid.UUID) (entity.MovieStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats entity.MovieStats
	for _, rv := range r.s.reviews {
		if rv.MovieID == movieID {
			stats.RatingSum += int64(rv.Rating)
			stats.ReviewCount++
		}
	}
	return stats, nil
}

// ---- reviews ----

type memReviewRepo struct{ s *memoryStore }

func checkReview(review *entity.Review) error {
	if review.Rating < entity.MinRating || review.Rating > entity.MaxRating {
		return violation(ErrCheckViolation, "reviews_rating_check")
	}
	return nil
}

func (r *memReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wrap := func(err error) error {
		return fmt.Errorf("create review for movie %s by user %s: %w", review.MovieID, review.UserID, err)
	}

	if _, ok := r.s.movies[review.MovieID]; !ok {
		return wrap(violation(ErrForeignKeyViolation, "reviews_movie_id_fkey"))
	}
	if _, ok := r.s.users[review.UserID]; !ok {
		return wrap(violation(ErrForeignKeyViolation, "reviews_user_id_fkey"))
	}
	if err := checkReview(review); err != nil {
		return wrap(err)
	}
	for _, rv := range r.s.reviews {
		if rv.ID == review.ID {
			return wrap(violation(ErrUniqueViolation, "reviews_pkey"))
		}
		if rv.MovieID == review.MovieID && rv.UserID == review.UserID {
			return wrap(violation(ErrUniqueViolation, "reviews_movie_id_user_id_key"))
		}
	}

	r.s.reviews[review.ID] = clone(review)
	r.s.track(review.ID)
	return nil
}

func (r *memReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if rv, ok := r.s.reviews[id]; ok {
		return clone(rv), nil
	}
	return nil, nil
}

func (r *memReviewRepo) FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rv := range r.s.reviews {
		if rv.UserID == userID && rv.MovieID == movieID {
			return clone(rv), nil
		}
	}
	return nil, nil
}

func (r *memReviewRepo) where(match func(*entity.Review) bool) []*entity.Review {
	reviews := make([]*entity.Review, 0)
	for _, rv := range r.s.reviews {
		if match(rv) {
			reviews = append(reviews, rv)
		}
	}
	newestFirst(r.s, reviews, func(rv *entity.Review) (uuid.UUID, time.Time) { return rv.ID, rv.CreatedAt })
	return reviews
}

func (r *memReviewRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return window(r.where(func(*entity.Review) bool { return true }), limit, offset), nil
}

func (r *memReviewRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.reviews)), nil
}

func (r *memReviewRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return window(r.where(func(rv *entity.Review) bool { return rv.MovieID == movieID }), limit, offset), nil
}

func (r *memReviewRepo) CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.where(func(rv *entity.Review) bool { return rv.MovieID == movieID }))), nil
}

// followedAuthorsLocked returns the user ids behind the profiles profileID follows.
func (r *memReviewRepo) followedAuthorsLocked(profileID uuid.UUID) map[uuid.UUID]bool {
	authors := make(map[uuid.UUID]bool)
	for k := range r.s.follows {
		if k.follower != profileID {
			continue
		}
		if p, ok := r.s.profiles[k.following]; ok {
			authors[p.UserID] = true
		}
	}
	return authors
}

func (r *memReviewRepo) FindFeed(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	authors := r.followedAuthorsLocked(profileID)
	return window(r.where(func(rv *entity.Review) bool { return authors[rv.UserID] }), limit, offset), nil
}

func (r *memReviewRepo) CountFeed(ctx context.Context, profileID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	authors := r.followedAuthorsLocked(profileID)
	return int64(len(r.where(func(rv *entity.Review) bool { return authors[rv.UserID] }))), nil
}

func (r *memReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.reviews[review.ID]
	if !ok {
		return fmt.Errorf("update review %s: %w", review.ID, ErrNotFound)
	}
	if err := checkReview(review); err != nil {
		return fmt.Errorf("update review %s: %w", review.ID, err)
	}
	existing.Text = review.Text
	existing.Rating = review.Rating
	return nil
}

func (r *memReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return fmt.Errorf("delete review %s: %w", id, ErrNotFound)
	}
	r.s.deleteReviewLocked(id)
	return nil
}

// ---- comments ----

type memCommentRepo struct{ s *memoryStore }

func (r *memCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wrap := func(err error) error {
		return fmt.Errorf("create comment on review %s: %w", comment.ReviewID, err)
	}

	if _, ok := r.s.comments[comment.ID]; ok {
		return wrap(violation(ErrUniqueViolation, "comments_pkey"))
	}
	if _, ok := r.s.reviews[comment.ReviewID]; !ok {
		return wrap(violation(ErrForeignKeyViolation, "comments_review_id_fkey"))
	}
	if _, ok := r.s.users[comment.AuthorID]; !ok {
		return wrap(violation(ErrForeignKeyViolation, "comments_author_id_fkey"))
	}
	if strings.TrimSpace(comment.Text) == "" {
		return wrap(violation(ErrCheckViolation, "comments_text_check"))
	}

	r.s.comments[comment.ID] = clone(comment)
	r.s.track(comment.ID)
	return nil
}

func (r *memCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c, ok := r.s.comments[id]; ok {
		return clone(c), nil
	}
	return nil, nil
}

func (r *memCommentRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := make([]*entity.Comment, 0, len(r.s.comments))
	for _, c := range r.s.comments {
		comments = append(comments, c)
	}
	newestFirst(r.s, comments, func(c *entity.Comment) (uuid.UUID, time.Time) { return c.ID, c.CreatedAt })
	return window(comments, limit, offset), nil
}

func (r *memCommentRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.comments)), nil
}

func (r *memCommentRepo) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := make([]*entity.Comment, 0)
	for _, c := range r.s.comments {
		if c.ReviewID == reviewID {
			comments = append(comments, c)
		}
	}
	newestFirst(r.s, comments, func(c *entity.Comment) (uuid.UUID, time.Time) { return c.ID, c.CreatedAt })
	// oldest first
	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}
	return window(comments, limit, offset), nil
}

func (r *memCommentRepo) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, c := range r.s.comments {
		if c.ReviewID == reviewID {
			n++
		}
	}
	return n, nil
}

func (r *memCommentRepo) Update(ctx context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.comments[comment.ID]
	if !ok {
		return fmt.Errorf("update comment %s: %w", comment.ID, ErrNotFound)
	}
	if strings.TrimSpace(comment.Text) == "" {
		return fmt.Errorf("update comment %s: %w", comment.ID, violation(ErrCheckViolation, "comments_text_check"))
	}
	existing.Text = comment.Text
	return nil
}

func (r *memCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return fmt.Errorf("delete comment %s: %w", id, ErrNotFound)
	}
	r.s.deleteCommentLocked(id)
	return nil
}

// ---- likes ----

type memLikeRepo struct{ s *memoryStore }

func (r *memLikeRepo) Create(ctx context.Context, like *entity.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wrap := func(err error) error {
		return fmt.Errorf("create like on review %s: %w", like.ReviewID, err)
	}

	if _, ok := r.s.reviews[like.ReviewID]; !ok {
		return wrap(violation(ErrForeignKeyViolation, "likes_review_id_fkey"))
	}
	if _, ok := r.s.users[like.UserID]; !ok {
		return wrap(violation(ErrForeignKeyViolation, "likes_user_id_fkey"))
	}
	for _, l := range r.s.likes {
		if l.ID == like.ID {
			return wrap(violation(ErrUniqueViolation, "likes_pkey"))
		}
		if l.UserID == like.UserID && l.ReviewID == like.ReviewID {
			return wrap(violation(ErrUniqueViolation, "likes_user_id_review_id_key"))
		}
	}

	r.s.likes[like.ID] = clone(like)
	r.s.track(like.ID)
	return nil
}

func (r *memLikeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if l, ok := r.s.likes[id]; ok {
		return clone(l), nil
	}
	return nil, nil
}

func (r *memLikeRepo) FindByUserAndReview(ctx context.Context, userID, reviewID uuid.UUID) (*entity.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, l := range r.s.likes {
		if l.UserID == userID && l.ReviewID == reviewID {
			return clone(l), nil
		}
	}
	return nil, nil
}

func (r *memLikeRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	likes := make([]*entity.Like, 0, len(r.s.likes))
	for _, l := range r.s.likes {
		likes = append(likes, l)
	}
	newestFirst(r.s, likes, func(l *entity.Like) (uuid.UUID, time.Time) { return l.ID, l.CreatedAt })
	return window(likes, limit, offset), nil
}

func (r *memLikeRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.likes)), nil
}

func (r *memLikeRepo) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, l := range r.s.likes {
		if l.ReviewID == reviewID {
			n++
		}
	}
	return n, nil
}

func (r *memLikeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.likes[id]; !ok {
		return fmt.Errorf("delete like %s: %w", id, ErrNotFound)
	}
	r.s.deleteLikeLocked(id)
	return nil
}
