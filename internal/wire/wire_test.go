package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"go.uber.org/zap"
)

type envelope struct {
	Status     bool            `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
	Pagination *struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type client struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()
	config := &utils.Config{
		App:       utils.AppConfig{Name: "flickfeed", Port: "8080"},
		Database:  utils.DatabaseConfig{Driver: utils.DriverMemory},
		Session:   utils.SessionConfig{TTL: time.Hour},
		RateLimit: utils.RateLimitConfig{Requests: 100, Window: time.Minute},
	}
	app := Wiring(repository.NewMemoryRepository(zap.NewNop()), config, zap.NewNop(), nil)
	return &client{t: t, router: app.Router}
}

func (c *client) do(method, path, token string, body any) (int, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			c.t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

func (c *client) expect(want int, method, path, token string, body any) envelope {
	c.t.Helper()
	code, env := c.do(method, path, token, body)
	if code != want {
		c.t.Fatalf("%s %s: status = %d, want %d (%s)", method, path, code, want, env.Message)
	}
	return env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode data %s: %v", raw, err)
	}
	return v
}

type idOnly struct {
	ID string `json:"id"`
}

func (c *client) register(username string) (token, userID string) {
	c.t.Helper()
	env := c.expect(http.StatusCreated, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	auth := decode[struct {
		Token string `json:"token"`
		User  idOnly `json:"user"`
	}](c.t, env.Data)
	return auth.Token, auth.User.ID
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	c.expect(http.StatusOK, http.MethodGet, "/health", "", nil)
}

func TestReviewFlow(t *testing.T) {
	c := newClient(t)
	alice, _ := c.register("alice")
	bob, _ := c.register("bob")

	movie := decode[idOnly](t, c.expect(http.StatusCreated, http.MethodPost, "/api/movies", alice, map[string]any{
		"title":        "Inception",
		"genre":        "sci_fi",
		"release_year": 2010,
		"description":  "Dreams within dreams.",
	}).Data)

	reviewBody := map[string]any{"movie_id": movie.ID, "text": "Great", "rating": 4}
	review := decode[idOnly](t, c.expect(http.StatusCreated, http.MethodPost, "/api/reviews", alice, reviewBody).Data)

	env := c.expect(http.StatusBadRequest, http.MethodPost, "/api/reviews", alice, reviewBody)
	if env.Message != "you have already reviewed this movie" {
		t.Errorf("duplicate message = %q", env.Message)
	}

	env = c.expect(http.StatusOK, http.MethodGet, "/api/movies/"+movie.ID+"/reviews", "", nil)
	reviews := decode[[]struct {
		Rating int `json:"rating"`
	}](t, env.Data)
	if len(reviews) != 1 || reviews[0].Rating != 4 {
		t.Fatalf("movie reviews = %+v", reviews)
	}

	got := decode[struct {
		AverageRating float64 `json:"average_rating"`
	}](t, c.expect(http.StatusOK, http.MethodGet, "/api/movies/"+movie.ID, "", nil).Data)
	if got.AverageRating != 4 {
		t.Errorf("average_rating = %v, want 4", got.AverageRating)
	}

	c.expect(http.StatusCreated, http.MethodPost, "/api/reviews/"+review.ID+"/like", bob, nil)
	c.expect(http.StatusBadRequest, http.MethodPost, "/api/reviews/"+review.ID+"/like", bob, nil)
	c.expect(http.StatusNoContent, http.MethodPost, "/api/reviews/"+review.ID+"/unlike", bob, nil)
	c.expect(http.StatusBadRequest, http.MethodPost, "/api/reviews/"+review.ID+"/unlike", bob, nil)

	c.expect(http.StatusForbidden, http.MethodPatch, "/api/reviews/"+review.ID, bob, map[string]any{"rating": 1})
	c.expect(http.StatusOK, http.MethodPatch, "/api/reviews/"+review.ID, alice, map[string]any{"rating": 5})

	c.expect(http.StatusUnauthorized, http.MethodPost, "/api/reviews", "", reviewBody)
	c.expect(http.StatusNotFound, http.MethodGet, "/api/reviews/not-a-uuid", "", nil)

	comment := decode[idOnly](t, c.expect(http.StatusCreated, http.MethodPost, "/api/comments", bob, map[string]any{
		"review_id": review.ID,
		"text":      "Agreed",
	}).Data)
	c.expect(http.StatusForbidden, http.MethodDelete, "/api/comments/"+comment.ID, alice, nil)

	c.expect(http.StatusNoContent, http.MethodDelete, "/api/reviews/"+review.ID, alice, nil)
	c.expect(http.StatusNotFound, http.MethodGet, "/api/comments/"+comment.ID, "", nil)
}

func TestFollowAndFeed(t *testing.T) {
	c := newClient(t)
	alice, _ := c.register("alice")
	bob, bobID := c.register("bob")

	bobProfile := decode[idOnly](t, c.expect(http.StatusOK, http.MethodGet, "/api/users/"+bobID+"/profile", "", nil).Data)
	aliceMe := decode[idOnly](t, c.expect(http.StatusOK, http.MethodGet, "/api/users/me", alice, nil).Data)
	aliceProfile := decode[idOnly](t, c.expect(http.StatusOK, http.MethodGet, "/api/users/"+aliceMe.ID+"/profile", "", nil).Data)

	c.expect(http.StatusOK, http.MethodPost, "/api/profiles/"+bobProfile.ID+"/follow", alice, nil)
	env := c.expect(http.StatusOK, http.MethodPost, "/api/profiles/"+bobProfile.ID+"/follow", alice, nil)
	counts := decode[struct {
		FollowerCount int64 `json:"follower_count"`
	}](t, env.Data)
	if counts.FollowerCount != 1 {
		t.Errorf("follower_count = %d, want 1", counts.FollowerCount)
	}

	env = c.expect(http.StatusBadRequest, http.MethodPost, "/api/profiles/"+aliceProfile.ID+"/follow", alice, nil)
	if env.Message != "you cannot follow yourself" {
		t.Errorf("self-follow message = %q", env.Message)
	}

	c.expect(http.StatusForbidden, http.MethodPatch, "/api/profiles/"+bobProfile.ID, alice, map[string]any{"bio": "hacked"})
	c.expect(http.StatusOK, http.MethodPatch, "/api/profiles/"+bobProfile.ID, bob, map[string]any{"bio": "Cinephile"})

	movie := decode[idOnly](t, c.expect(http.StatusCreated, http.MethodPost, "/api/movies", bob, map[string]any{
		"title":        "Heat",
		"genre":        "THRILLER",
		"release_year": 1995,
		"description":  "Cops and robbers.",
	}).Data)
	c.expect(http.StatusCreated, http.MethodPost, "/api/reviews", bob, map[string]any{"movie_id": movie.ID, "text": "Classic", "rating": 5})

	env = c.expect(http.StatusOK, http.MethodGet, "/api/profiles/feed", alice, nil)
	if env.Pagination == nil || env.Pagination.Total != 1 {
		t.Fatalf("feed pagination = %+v", env.Pagination)
	}

	c.expect(http.StatusOK, http.MethodPost, "/api/profiles/"+bobProfile.ID+"/unfollow", alice, nil)
	c.expect(http.StatusOK, http.MethodPost, "/api/profiles/"+bobProfile.ID+"/unfollow", alice, nil)

	env = c.expect(http.StatusOK, http.MethodGet, "/api/profiles/feed", alice, nil)
	if feed := decode[[]idOnly](t, env.Data); len(feed) != 0 {
		t.Errorf("feed after unfollow = %v", feed)
	}
}

func TestMovieFilters(t *testing.T) {
	c := newClient(t)
	token, _ := c.register("alice")

	for _, m := range []map[string]any{
		{"title": "Alien", "genre": "HORROR", "release_year": 1979, "description": "x"},
		{"title": "Aliens", "genre": "ACTION", "release_year": 1986, "description": "x"},
		{"title": "Amelie", "genre": "ROMANCE", "release_year": 2001, "description": "x"},
	} {
		c.expect(http.StatusCreated, http.MethodPost, "/api/movies", token, m)
	}

	tests := []struct {
		query string
		code  int
		total int64
	}{
		{"", http.StatusOK, 3},
		{"?title=ALIEN", http.StatusOK, 2},
		{"?title=alien&genre=action", http.StatusOK, 1},
		{"?year=2001", http.StatusOK, 1},
		{"?release_year=1979&year=2001", http.StatusOK, 1},
		{"?genre=western", http.StatusBadRequest, 0},
		{"?release_year=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			env := c.expect(tt.code, http.MethodGet, "/api/movies"+tt.query, "", nil)
			if tt.code == http.StatusOK && env.Pagination.Total != tt.total {
				t.Errorf("total = %d, want %d", env.Pagination.Total, tt.total)
			}
		})
	}

	c.expect(http.StatusBadRequest, http.MethodPost, "/api/movies", token, map[string]any{
		"title": "Bad", "genre": "WESTERN", "release_year": 2000, "description": "x",
	})
}

func TestAccountLifecycle(t *testing.T) {
	c := newClient(t)
	token, userID := c.register("alice")

	c.expect(http.StatusBadRequest, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice", "email": "new@example.com", "password": "secret123",
	})
	c.expect(http.StatusUnauthorized, http.MethodPost, "/api/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	c.expect(http.StatusOK, http.MethodPost, "/api/login", "", map[string]string{
		"username": "alice", "password": "secret123",
	})

	c.expect(http.StatusForbidden, http.MethodDelete, "/api/admin/users/"+userID, token, nil)

	c.expect(http.StatusOK, http.MethodPost, "/api/logout", token, nil)
	c.expect(http.StatusUnauthorized, http.MethodGet, "/api/users/me", token, nil)

	fresh := decode[struct {
		Token string `json:"token"`
	}](t, c.expect(http.StatusOK, http.MethodPost, "/api/login", "", map[string]string{
		"username": "alice@example.com", "password": "secret123",
	}).Data)

	c.expect(http.StatusNoContent, http.MethodDelete, "/api/users/me", fresh.Token, nil)
	c.expect(http.StatusNotFound, http.MethodGet, "/api/users/"+userID+"/profile", "", nil)
}
