package wire

import (
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLike(r chi.Router, likeHandler *adaptor.LikeHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/likes", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", likeHandler.GetLikes)
		r.Get("/{id}", likeHandler.GetLikeByID)
		r.Post("/", likeHandler.CreateLike)
		r.Delete("/{id}", likeHandler.DeleteLike)
	})
}
