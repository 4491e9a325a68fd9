package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/entity"
	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/dto/request"
	"github.com/hamza13-12/flickfeed/internal/dto/response"
	"github.com/hamza13-12/flickfeed/internal/permission"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fixture struct {
	repo *repository.Repository
	svc  *Service
	ctx  context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := repository.NewMemoryRepository(zap.NewNop())
	config := &utils.Config{Session: utils.SessionConfig{TTL: time.Hour}}
	return &fixture{
		repo: repo,
		svc:  NewService(repo, config, zap.NewNop()),
		ctx:  context.Background(),
	}
}

func (f *fixture) register(t *testing.T, username string) *response.AuthResponse {
	t.Helper()
	resp, err := f.svc.Auth.Register(f.ctx, &request.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	}, ClientInfo{})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return resp
}

func userID(t *testing.T, resp *response.AuthResponse) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(resp.User.ID)
	if err != nil {
		t.Fatalf("parse user id: %v", err)
	}
	return id
}

func (f *fixture) profileOf(t *testing.T, user uuid.UUID) *entity.Profile {
	t.Helper()
	p, err := f.repo.Profile.FindByUserID(f.ctx, user)
	if err != nil || p == nil {
		t.Fatalf("profile of %s: %v", user, err)
	}
	return p
}

func (f *fixture) movie(t *testing.T, title string) *response.MovieResponse {
	t.Helper()
	resp, err := f.svc.Movie.CreateMovie(f.ctx, &request.MovieRequest{
		Title:       title,
		Genre:       "drama",
		ReleaseYear: 2010,
		Description: "A movie.",
	})
	if err != nil {
		t.Fatalf("create movie %s: %v", title, err)
	}
	return resp
}

func (f *fixture) review(t *testing.T, actor uuid.UUID, movieID string, rating int) *response.ReviewResponse {
	t.Helper()
	resp, err := f.svc.Review.CreateReview(f.ctx, actor, &request.CreateReviewRequest{
		MovieID: movieID,
		Text:    fmt.Sprintf("rated %d", rating),
		Rating:  rating,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	return resp
}

func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

var page = request.PaginatedRequest{Page: 1, PerPage: 10}

func TestRegisterCreatesProfile(t *testing.T) {
	f := newFixture(t)
	resp := f.register(t, "alice")

	if resp.Token == "" {
		t.Fatal("expected a session token")
	}

	profile, err := f.svc.User.GetUserProfile(f.ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if profile.Bio != "" || profile.ProfilePicture != nil {
		t.Errorf("expected empty profile, got %+v", profile)
	}
	if profile.User.Username != "alice" {
		t.Errorf("expected nested user alice, got %q", profile.User.Username)
	}
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	_, err := f.svc.Auth.Register(f.ctx, &request.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	}, ClientInfo{})
	assertKind(t, err, ErrValidation)

	var uerr *Error
	if !errors.As(err, &uerr) || uerr.Fields["username"] == "" {
		t.Fatalf("expected username field error, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"by username", "alice", "secret123", nil},
		{"by email", "alice@example.com", "secret123", nil},
		{"wrong password", "alice", "nope", ErrUnauthorized},
		{"unknown user", "bob", "secret123", ErrUnauthorized},
		{"missing password", "alice", "", ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.Auth.Login(f.ctx, &request.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			}, ClientInfo{UserAgent: "test"})
			if tt.wantErr != nil {
				assertKind(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected a token")
			}
		})
	}
}

// sweepingSessions counts expired-session sweeps and can make them fail.
type sweepingSessions struct {
	repository.SessionRepository
	sweeps int
	err    error
}

func (s *sweepingSessions) CleanExpiredSessions(ctx context.Context) (int64, error) {
	s.sweeps++
	if s.err != nil {
		return 0, s.err
	}
	return s.SessionRepository.CleanExpiredSessions(ctx)
}

func TestLoginSweepsExpiredSessions(t *testing.T) {
	tests := []struct {
		name     string
		sweepErr error
	}{
		{"sweep succeeds", nil},
		{"sweep failure does not block login", errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.register(t, "alice")

			sessions := &sweepingSessions{SessionRepository: f.repo.Session, err: tt.sweepErr}
			repo := *f.repo
			repo.Session = sessions
			auth := NewAuthService(&repo, &utils.Config{Session: utils.SessionConfig{TTL: time.Hour}}, zap.NewNop())

			resp, err := auth.Login(f.ctx, &request.LoginRequest{Username: "alice", Password: "secret123"}, ClientInfo{})
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected a token")
			}
			if sessions.sweeps != 1 {
				t.Errorf("expected one sweep, got %d", sessions.sweeps)
			}
		})
	}
}

func TestLogoutEndsSession(t *testing.T) {
	f := newFixture(t)
	resp := f.register(t, "alice")
	token := uuid.MustParse(resp.Token)

	if err := f.svc.Auth.Logout(f.ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	session, err := f.repo.Session.FindValidSession(f.ctx, token)
	if err != nil {
		t.Fatalf("FindValidSession: %v", err)
	}
	if session != nil {
		t.Error("expected the session to be revoked")
	}
	assertKind(t, f.svc.Auth.Logout(f.ctx, token), ErrUnauthorized)
}

func TestAverageRating(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	bob := userID(t, f.register(t, "bob"))
	m := f.movie(t, "Inception")

	if m.AverageRating != 0 || m.ReviewCount != 0 {
		t.Fatalf("expected no rating yet, got %v/%d", m.AverageRating, m.ReviewCount)
	}

	f.review(t, alice, m.ID, 4)
	f.review(t, bob, m.ID, 2)

	got, err := f.svc.Movie.GetMovieByID(f.ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMovieByID: %v", err)
	}
	if got.AverageRating != 3.0 {
		t.Errorf("expected average 3.0, got %v", got.AverageRating)
	}
	if got.ReviewCount != 2 {
		t.Errorf("expected 2 reviews, got %d", got.ReviewCount)
	}
}

func TestCreateReview(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	m := f.movie(t, "Heat")

	first := f.review(t, alice, m.ID, 4)
	if first.User.Username != "alice" || first.MovieTitle != "Heat" {
		t.Errorf("unexpected nested fields: %+v", first)
	}

	tests := []struct {
		name    string
		req     request.CreateReviewRequest
		wantErr error
	}{
		{"duplicate", request.CreateReviewRequest{MovieID: m.ID, Text: "again", Rating: 5}, ErrValidation},
		{"rating too high", request.CreateReviewRequest{MovieID: m.ID, Text: "x", Rating: 6}, ErrValidation},
		{"rating too low", request.CreateReviewRequest{MovieID: m.ID, Text: "x", Rating: 0}, ErrValidation},
		{"blank text", request.CreateReviewRequest{MovieID: m.ID, Text: "   ", Rating: 3}, ErrValidation},
		{"unknown movie", request.CreateReviewRequest{MovieID: uuid.NewString(), Text: "x", Rating: 3}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Review.CreateReview(f.ctx, alice, &tt.req)
			assertKind(t, err, tt.wantErr)
		})
	}

	list, err := f.svc.Review.GetMovieReviews(f.ctx, m.ID, page)
	if err != nil {
		t.Fatalf("GetMovieReviews: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].Rating != 4 {
		t.Fatalf("expected the single original review, got %+v", list.Data)
	}
}

func TestDuplicateReviewRaceIsConflict(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	m := f.movie(t, "Heat")
	movieID := uuid.MustParse(m.ID)

	// A row that appears between the pre-check and the insert.
	svc := NewReviewService(&repository.Repository{
		User:    f.repo.User,
		Movie:   f.repo.Movie,
		Review:  racingReviews{ReviewRepository: f.repo.Review},
		Like:    f.repo.Like,
		Profile: f.repo.Profile,
	}, f.svc.Like, zap.NewNop())

	f.review(t, alice, m.ID, 3)

	_, err := svc.CreateReview(f.ctx, alice, &request.CreateReviewRequest{
		MovieID: movieID.String(),
		Text:    "second",
		Rating:  5,
	})
	assertKind(t, err, ErrConflict)
}

// racingReviews hides existing reviews from the duplicate pre-check.
type racingReviews struct {
	repository.ReviewRepository
}

func (racingReviews) FindByUserAndMovie(context.Context, uuid.UUID, uuid.UUID) (*entity.Review, error) {
	return nil, nil
}

func TestReviewOwnership(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	bob := userID(t, f.register(t, "bob"))
	m := f.movie(t, "Heat")
	r := f.review(t, alice, m.ID, 4)

	text := "edited"
	_, err := f.svc.Review.UpdateReview(f.ctx, bob, permission.ActionWrite, r.ID, &request.UpdateReviewRequest{Text: &text})
	assertKind(t, err, ErrForbidden)
	assertKind(t, f.svc.Review.DeleteReview(f.ctx, bob, permission.ActionWrite, r.ID), ErrForbidden)

	_, err = f.svc.Review.UpdateReview(f.ctx, bob, permission.ActionWrite, uuid.NewString(), &request.UpdateReviewRequest{Text: &text})
	assertKind(t, err, ErrNotFound)

	updated, err := f.svc.Review.UpdateReview(f.ctx, alice, permission.ActionWrite, r.ID, &request.UpdateReviewRequest{Text: &text})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Text != "edited" || updated.Rating != 4 {
		t.Errorf("expected partial update, got %+v", updated)
	}
}

func TestLikes(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	bob := userID(t, f.register(t, "bob"))
	m := f.movie(t, "Heat")
	r := f.review(t, alice, m.ID, 4)

	if _, err := f.svc.Review.LikeReview(f.ctx, bob, r.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	_, err := f.svc.Review.LikeReview(f.ctx, bob, r.ID)
	assertKind(t, err, ErrValidation)

	got, err := f.svc.Review.GetReviewByID(f.ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReviewByID: %v", err)
	}
	if got.LikesCount != 1 {
		t.Errorf("expected 1 like, got %d", got.LikesCount)
	}

	if err := f.svc.Review.UnlikeReview(f.ctx, bob, r.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	assertKind(t, f.svc.Review.UnlikeReview(f.ctx, bob, r.ID), ErrValidation)

	like, err := f.svc.Like.CreateLike(f.ctx, bob, &request.CreateLikeRequest{ReviewID: r.ID})
	if err != nil {
		t.Fatalf("like again after unlike: %v", err)
	}

	assertKind(t, f.svc.Like.DeleteLike(f.ctx, alice, permission.ActionWrite, like.ID), ErrForbidden)
	if err := f.svc.Like.DeleteLike(f.ctx, bob, permission.ActionWrite, like.ID); err != nil {
		t.Fatalf("owner delete like: %v", err)
	}
}

func TestFollow(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	bob := userID(t, f.register(t, "bob"))
	aliceProfile := f.profileOf(t, alice).ID.String()
	bobProfile := f.profileOf(t, bob).ID.String()

	for i := 0; i < 2; i++ {
		resp, err := f.svc.Profile.Follow(f.ctx, alice, bobProfile)
		if err != nil {
			t.Fatalf("follow #%d: %v", i+1, err)
		}
		if resp.FollowerCount != 1 {
			t.Fatalf("follow #%d: expected 1 follower, got %d", i+1, resp.FollowerCount)
		}
	}

	_, err := f.svc.Profile.Follow(f.ctx, alice, aliceProfile)
	assertKind(t, err, ErrValidation)

	_, err = f.svc.Profile.Follow(f.ctx, alice, "not-a-uuid")
	assertKind(t, err, ErrNotFound)

	following, err := f.svc.Profile.GetFollowing(f.ctx, aliceProfile, page)
	if err != nil {
		t.Fatalf("GetFollowing: %v", err)
	}
	if len(following.Data) != 1 || following.Data[0].ID != bobProfile {
		t.Errorf("expected alice to follow bob, got %+v", following.Data)
	}

	for i := 0; i < 2; i++ {
		resp, err := f.svc.Profile.Unfollow(f.ctx, alice, bobProfile)
		if err != nil {
			t.Fatalf("unfollow #%d: %v", i+1, err)
		}
		if resp.FollowerCount != 0 {
			t.Fatalf("unfollow #%d: expected 0 followers, got %d", i+1, resp.FollowerCount)
		}
	}
}

func TestFeed(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	bob := userID(t, f.register(t, "bob"))
	carol := userID(t, f.register(t, "carol"))
	dave := userID(t, f.register(t, "dave"))

	feed, err := f.svc.Profile.Feed(f.ctx, alice, page)
	if err != nil {
		t.Fatalf("empty feed: %v", err)
	}
	if feed.Data == nil || len(feed.Data) != 0 {
		t.Fatalf("expected empty non-nil feed, got %+v", feed.Data)
	}

	first := f.movie(t, "First")
	second := f.movie(t, "Second")
	oldest := f.review(t, bob, first.ID, 3)
	f.review(t, dave, first.ID, 1)
	middle := f.review(t, carol, first.ID, 5)
	latest := f.review(t, bob, second.ID, 4)
	f.review(t, dave, second.ID, 2)

	for _, followed := range []uuid.UUID{bob, carol} {
		if _, err := f.svc.Profile.Follow(f.ctx, alice, f.profileOf(t, followed).ID.String()); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}

	feed, err = f.svc.Profile.Feed(f.ctx, alice, page)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.Pagination.Total != 3 {
		t.Errorf("expected total 3, got %d", feed.Pagination.Total)
	}

	want := []*response.ReviewResponse{latest, middle, oldest}
	if len(feed.Data) != len(want) {
		t.Fatalf("expected %d reviews from followed profiles, got %d", len(want), len(feed.Data))
	}
	for i, r := range feed.Data {
		if r.ID != want[i].ID {
			t.Errorf("position %d: got review by %s on %s, want %s", i, r.User.Username, r.MovieTitle, want[i].ID)
		}
		if r.User.Username == "dave" {
			t.Errorf("review %s by an unfollowed author leaked into the feed", r.ID)
		}
	}

	// An author's reviews leave the feed once unfollowed.
	if _, err := f.svc.Profile.Unfollow(f.ctx, alice, f.profileOf(t, carol).ID.String()); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	feed, err = f.svc.Profile.Feed(f.ctx, alice, page)
	if err != nil {
		t.Fatalf("feed after unfollow: %v", err)
	}
	if len(feed.Data) != 2 || feed.Data[0].ID != latest.ID || feed.Data[1].ID != oldest.ID {
		t.Errorf("expected only bob's reviews after unfollowing carol, got %d reviews", len(feed.Data))
	}
}

func TestDeleteReviewCascades(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	bob := userID(t, f.register(t, "bob"))
	m := f.movie(t, "Heat")
	r := f.review(t, alice, m.ID, 4)

	comment, err := f.svc.Comment.CreateComment(f.ctx, bob, &request.CreateCommentRequest{ReviewID: r.ID, Text: "agreed"})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if _, err := f.svc.Review.LikeReview(f.ctx, bob, r.ID); err != nil {
		t.Fatalf("LikeReview: %v", err)
	}

	if err := f.svc.Review.DeleteReview(f.ctx, alice, permission.ActionWrite, r.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}

	_, err = f.svc.Comment.GetCommentByID(f.ctx, comment.ID)
	assertKind(t, err, ErrNotFound)

	likes, err := f.svc.Like.GetLikes(f.ctx, page)
	if err != nil {
		t.Fatalf("GetLikes: %v", err)
	}
	if likes.Pagination.Total != 0 {
		t.Errorf("expected likes to be removed, got %d", likes.Pagination.Total)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	m := f.movie(t, "Heat")
	f.review(t, alice, m.ID, 5)

	if err := f.svc.User.DeleteMe(f.ctx, alice); err != nil {
		t.Fatalf("DeleteMe: %v", err)
	}

	_, err := f.svc.User.GetUserProfile(f.ctx, alice.String())
	assertKind(t, err, ErrNotFound)

	got, err := f.svc.Movie.GetMovieByID(f.ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMovieByID: %v", err)
	}
	if got.ReviewCount != 0 || got.AverageRating != 0 {
		t.Errorf("expected the review to be gone, got %d/%v", got.ReviewCount, got.AverageRating)
	}
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	bob := userID(t, f.register(t, "bob"))
	m := f.movie(t, "Heat")
	r := f.review(t, alice, m.ID, 4)

	for _, text := range []string{"one", "two"} {
		if _, err := f.svc.Comment.CreateComment(f.ctx, bob, &request.CreateCommentRequest{ReviewID: r.ID, Text: text}); err != nil {
			t.Fatalf("CreateComment %s: %v", text, err)
		}
	}

	list, err := f.svc.Comment.GetReviewComments(f.ctx, r.ID, page)
	if err != nil {
		t.Fatalf("GetReviewComments: %v", err)
	}
	if len(list.Data) != 2 || list.Data[0].Text != "one" {
		t.Fatalf("expected oldest comment first, got %+v", list.Data)
	}
	if list.Data[0].Author.Username != "bob" {
		t.Errorf("expected nested author bob, got %q", list.Data[0].Author.Username)
	}

	text := "edited"
	_, err = f.svc.Comment.UpdateComment(f.ctx, alice, permission.ActionWrite, list.Data[0].ID, &request.UpdateCommentRequest{Text: &text})
	assertKind(t, err, ErrForbidden)

	_, err = f.svc.Comment.CreateComment(f.ctx, bob, &request.CreateCommentRequest{ReviewID: uuid.NewString(), Text: "x"})
	assertKind(t, err, ErrValidation)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	alice := userID(t, f.register(t, "alice"))
	bob := userID(t, f.register(t, "bob"))
	profileID := f.profileOf(t, alice).ID.String()

	bio := "Film nerd"
	_, err := f.svc.Profile.UpdateProfile(f.ctx, bob, permission.ActionWrite, profileID, &request.UpdateProfileRequest{Bio: &bio})
	assertKind(t, err, ErrForbidden)

	resp, err := f.svc.Profile.UpdateProfile(f.ctx, alice, permission.ActionWrite, profileID, &request.UpdateProfileRequest{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if resp.Bio != bio {
		t.Errorf("expected bio %q, got %q", bio, resp.Bio)
	}

	long := string(make([]byte, entity.MaxBioLength+1))
	_, err = f.svc.Profile.UpdateProfile(f.ctx, alice, permission.ActionWrite, profileID, &request.UpdateProfileRequest{Bio: &long})
	assertKind(t, err, ErrValidation)
}

func TestGetMoviesFilter(t *testing.T) {
	f := newFixture(t)
	f.movie(t, "The Dark Knight")
	f.movie(t, "Dark City")
	f.movie(t, "Amelie")

	resp, err := f.svc.Movie.GetMovies(f.ctx, entity.MovieFilter{Title: "dark"}, page)
	if err != nil {
		t.Fatalf("GetMovies: %v", err)
	}
	if resp.Pagination.Total != 2 {
		t.Errorf("expected 2 matches, got %d", resp.Pagination.Total)
	}
}
