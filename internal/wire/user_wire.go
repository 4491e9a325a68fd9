package wire

import (
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/adaptor"
	"github.com/hamza13-12/flickfeed/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler, log *zap.Logger) {
	r.Route("/api/users", func(r chi.Router) {
		// public nested profile
		r.Get("/{id}/profile", userHandler.GetUserProfile)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/", userHandler.GetUsers)
			r.Get("/me", userHandler.GetMe)
			r.Delete("/me", userHandler.DeleteMe)
			r.Get("/{id}", userHandler.GetUserByID)
		})
	})

	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.Admin(log))

		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
