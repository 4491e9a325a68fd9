package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryStore keeps every table in maps behind one mutex. It enforces the
// same unique, check and foreign key rules as schema.sql and applies the
// same ON DELETE CASCADE chains.
type memoryStore struct {
	mu  sync.RWMutex
	log *zap.Logger

	seq       int64
	order     map[uuid.UUID]int64
	edgeOrder map[followKey]int64

	users    map[uuid.UUID]*entity.User
	sessions map[uuid.UUID]*entity.Session // keyed by token
	profiles map[uuid.UUID]*entity.Profile
	follows  map[followKey]*entity.Follow
	movies   map[uuid.UUID]*entity.Movie
	reviews  map[uuid.UUID]*entity.Review
	comments map[uuid.UUID]*entity.Comment
	likes    map[uuid.UUID]*entity.Like
}

type followKey struct {
	follower  uuid.UUID
	following uuid.UUID
}

func newMemoryStore(log *zap.Logger) *memoryStore {
	return &memoryStore{
		log:      log.With(zap.String("repository", "memory")),
		order:     make(map[uuid.UUID]int64),
		edgeOrder: make(map[followKey]int64),
		users:    make(map[uuid.UUID]*entity.User),
		sessions: make(map[uuid.UUID]*entity.Session),
		profiles: make(map[uuid.UUID]*entity.Profile),
		follows:  make(map[followKey]*entity.Follow),
		movies:   make(map[uuid.UUID]*entity.Movie),
		reviews:  make(map[uuid.UUID]*entity.Review),
		comments: make(map[uuid.UUID]*entity.Comment),
		likes:    make(map[uuid.UUID]*entity.Like),
	}
}

// NewMemoryRepository returns a Repository backed by process memory.
func NewMemoryRepository(log *zap.Logger) *Repository {
	s := newMemoryStore(log)
	return &Repository{
		User:    &memUserRepo{s},
		Session: &memSessionRepo{s},
		Profile: &memProfileRepo{s},
		Movie:   &memMovieRepo{s},
		Review:  &memReviewRepo{s},
		Comment: &memCommentRepo{s},
		Like:    &memLikeRepo{s},
	}
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

func (s *memoryStore) track(id uuid.UUID) {
	s.seq++
	s.order[id] = s.seq
}

func (s *memoryStore) untrack(id uuid.UUID) {
	delete(s.order, id)
}

// newestFirst orders by created_at descending, insertion order breaking ties.
func newestFirst[T any](s *memoryStore, items []*T, key func(*T) (uuid.UUID, time.Time)) {
	sort.SliceStable(items, func(i, j int) bool {
		idI, tI := key(items[i])
		idJ, tJ := key(items[j])
		if !tI.Equal(tJ) {
			return tI.After(tJ)
		}
		return s.order[idI] > s.order[idJ]
	})
}

func window[T any](items []*T, limit, offset int) []*T {
	if offset < 0 {
		offset = 0
	}
	if offset > len(items) {
		offset = len(items)
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*T, 0, end-offset)
	for _, item := range items[offset:end] {
		out = append(out, clone(item))
	}
	return out
}

func violation(sentinel error, constraint string) error {
	return fmt.Errorf("%w (%s)", sentinel, constraint)
}

// ---- cascades, callers hold s.mu ----

func (s *memoryStore) deleteCommentLocked(id uuid.UUID) {
	delete(s.comments, id)
	s.untrack(id)
}

func (s *memoryStore) deleteLikeLocked(id uuid.UUID) {
	delete(s.likes, id)
	s.untrack(id)
}

func (s *memoryStore) deleteReviewLocked(id uuid.UUID) {
	for cid, c := range s.comments {
		if c.ReviewID == id {
			s.deleteCommentLocked(cid)
		}
	}
	for lid, l := range s.likes {
		if l.ReviewID == id {
			s.deleteLikeLocked(lid)
		}
	}
	delete(s.reviews, id)
	s.untrack(id)
}

func (s *memoryStore) deleteProfileLocked(id uuid.UUID) {
	for k := range s.follows {
		if k.follower == id || k.following == id {
			delete(s.follows, k)
			delete(s.edgeOrder, k)
		}
	}
	delete(s.profiles, id)
	s.untrack(id)
}

func (s *memoryStore) deleteUserLocked(id uuid.UUID) {
	for token, sess := range s.sessions {
		if sess.UserID == id {
			delete(s.sessions, token)
		}
	}
	for pid, p := range s.profiles {
		if p.UserID == id {
			s.deleteProfileLocked(pid)
		}
	}
	for rid, r := range s.reviews {
		if r.UserID == id {
			s.deleteReviewLocked(rid)
		}
	}
	for cid, c := range s.comments {
		if c.AuthorID == id {
			s.deleteCommentLocked(cid)
		}
	}
	for lid, l := range s.likes {
		if l.UserID == id {
			s.deleteLikeLocked(lid)
		}
	}
	delete(s.users, id)
	s.untrack(id)
}

func (s *memoryStore) deleteMovieLocked(id uuid.UUID) {
	for rid, r := range s.reviews {
		if r.MovieID == id {
			s.deleteReviewLocked(rid)
		}
	}
	delete(s.movies, id)
	s.untrack(id)
}

// ---- users ----

type memUserRepo struct{ s *memoryStore }

func (r *memUserRepo) checkUniqueLocked(user *entity.User) error {
	for _, u := range r.s.users {
		if u.ID == user.ID {
			continue
		}
		if u.Username == user.Username {
			return violation(ErrUniqueViolation, "users_username_key")
		}
		if strings.EqualFold(u.Email, user.Email) {
			return violation(ErrUniqueViolation, "users_email_key")
		}
	}
	return nil
}

func (r *memUserRepo) insertLocked(user *entity.User) error {
	if _, ok := r.s.users[user.ID]; ok {
		return violation(ErrUniqueViolation, "users_pkey")
	}
	if err := r.checkUniqueLocked(user); err != nil {
		return err
	}
	r.s.users[user.ID] = clone(user)
	r.s.track(user.ID)
	return nil
}

func (r *memUserRepo) CreateWithProfile(ctx context.Context, user *entity.User, profile *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if profile.UserID != user.ID {
		return fmt.Errorf("create profile for user %s: %w", user.ID, violation(ErrForeignKeyViolation, "profiles_user_id_fkey"))
	}
	if _, ok := r.s.profiles[profile.ID]; ok {
		return fmt.Errorf("create profile for user %s: %w", user.ID, violation(ErrUniqueViolation, "profiles_pkey"))
	}
	if err := r.insertLocked(user); err != nil {
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	r.s.profiles[profile.ID] = clone(profile)
	r.s.track(profile.ID)
	return nil
}

func (r *memUserRepo) find(match func(*entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			return clone(u)
		}
	}
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *memUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	newestFirst(r.s, users, func(u *entity.User) (uuid.UUID, time.Time) { return u.ID, u.CreatedAt })
	return window(users, limit, offset), nil
}

func (r *memUserRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("delete user %s: %w", id, ErrNotFound)
	}
	r.s.deleteUserLocked(id)
	r.s.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}

// ---- sessions ----

type memSessionRepo struct{ s *memoryStore }

func (r *memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[session.UserID]; !ok {
		return fmt.Errorf("create session: %w", violation(ErrForeignKeyViolation, "sessions_user_id_fkey"))
	}
	if _, ok := r.s.sessions[session.Token]; ok {
		return fmt.Errorf("create session: %w", violation(ErrUniqueViolation, "sessions_token_key"))
	}
	r.s.sessions[session.Token] = clone(session)
	return nil
}

func (r *memSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sess, ok := r.s.sessions[token]
	if !ok || !sess.Active(time.Now()) {
		return nil, nil
	}
	return clone(sess), nil
}

func (r *memSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return fmt.Errorf("revoke session: %w", ErrNotFound)
	}
	now := time.Now()
	sess.RevokedAt = &now
	return nil
}

func (r *memSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	cutoff := time.Now().Add(-sessionRetention)
	for token, sess := range r.s.sessions {
		if sess.ExpiresAt.Before(cutoff) {
			delete(r.s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// ---- profiles and follow edges ----

type memProfileRepo struct{ s *memoryStore }

func (r *memProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p, ok := r.s.profiles[id]; ok {
		return clone(p), nil
	}
	return nil, nil
}

func (r *memProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.profiles {
		if p.UserID == userID {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profiles := make([]*entity.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		profiles = append(profiles, p)
	}
	newestFirst(r.s, profiles, func(p *entity.Profile) (uuid.UUID, time.Time) { return p.ID, p.CreatedAt })
	return window(profiles, limit, offset), nil
}

func (r *memProfileRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.profiles)), nil
}

func (r *memProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.profiles[profile.ID]
	if !ok {
		return fmt.Errorf("update profile %s: %w", profile.ID, ErrNotFound)
	}
	if len([]rune(profile.Bio)) > entity.MaxBioLength {
		return fmt.Errorf("update profile %s: %w", profile.ID, violation(ErrCheckViolation, "profiles_bio_check"))
	}

	existing.Bio = profile.Bio
	existing.ProfilePicture = profile.ProfilePicture
	existing.UpdatedAt = profile.UpdatedAt
	return nil
}

func (r *memProfileRepo) Follow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if followerID == followingID {
		return false, fmt.Errorf("follow %s -> %s: %w", followerID, followingID, violation(ErrCheckViolation, "profile_follows_no_self"))
	}
	_, okA := r.s.profiles[followerID]
	_, okB := r.s.profiles[followingID]
	if !okA || !okB {
		return false, fmt.Errorf("follow %s -> %s: %w", followerID, followingID, violation(ErrForeignKeyViolation, "profile_follows_fkey"))
	}

	key := followKey{follower: followerID, following: followingID}
	if _, exists := r.s.follows[key]; exists {
		return false, nil
	}
	r.s.follows[key] = &entity.Follow{FollowerID: followerID, FollowingID: followingID, CreatedAt: time.Now()}
	r.s.seq++
	r.s.edgeOrder[key] = r.s.seq
	return true, nil
}

func (r *memProfileRepo) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := followKey{follower: followerID, following: followingID}
	if _, exists := r.s.follows[key]; !exists {
		return false, nil
	}
	delete(r.s.follows, key)
	delete(r.s.edgeOrder, key)
	return true, nil
}

func (r *memProfileRepo) CountFollowers(ctx context.Context, profileID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for k := range r.s.follows {
		if k.following == profileID {
			n++
		}
	}
	return n, nil
}

func (r *memProfileRepo) CountFollowing(ctx context.Context, profileID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for k := range r.s.follows {
		if k.follower == profileID {
			n++
		}
	}
	return n, nil
}

func (r *memProfileRepo) edges(profileID uuid.UUID, followers bool, limit, offset int) []*entity.Profile {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var keys []followKey
	for k := range r.s.follows {
		if (followers && k.following == profileID) || (!followers && k.follower == profileID) {
			keys = append(keys, k)
		}
	}
	// Newest edge first; equal timestamps fall back to insertion order.
	sort.Slice(keys, func(i, j int) bool {
		ti, tj := r.s.follows[keys[i]].CreatedAt, r.s.follows[keys[j]].CreatedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return r.s.edgeOrder[keys[i]] > r.s.edgeOrder[keys[j]]
	})

	profiles := make([]*entity.Profile, 0, len(keys))
	for _, k := range keys {
		f := r.s.follows[k]
		other := f.FollowingID
		if followers {
			other = f.FollowerID
		}
		if p, ok := r.s.profiles[other]; ok {
			profiles = append(profiles, p)
		}
	}
	return window(profiles, limit, offset)
}

func (r *memProfileRepo) FindFollowers(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Profile, error) {
	return r.edges(profileID, true, limit, offset), nil
}

func (r *memProfileRepo) FindFollowing(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*entity.Profile, error) {
	return r.edges(profileID, false, limit, offset), nil
}
