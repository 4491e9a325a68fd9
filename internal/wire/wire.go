package wire

import (
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/adaptor"
	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/usecase"
	"github.com/hamza13-12/flickfeed/pkg/middleware"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. rdb may be nil, in which
// case requests are not rate limited.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, rdb *redis.Client) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, repo, config, logger, rdb),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	rdb *redis.Client,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.NewRateLimiter(rdb, config.RateLimit, logger).Handler)

	auth := middleware.AuthSession(repo.Session, repo.User, logger)

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth, logger)
	wireProfile(r, handler.Profile, auth)
	wireMovie(r, handler.Movie, handler.Review, auth)
	wireReview(r, handler.Review, handler.Comment, auth)
	wireComment(r, handler.Comment, auth)
	wireLike(r, handler.Like, auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"app": config.App.Name})
	})

	return r
}
