package wire

import (
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(r chi.Router, commentHandler *adaptor.CommentHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/comments", func(r chi.Router) {
		r.Get("/", commentHandler.GetComments)
		r.Get("/{id}", commentHandler.GetCommentByID)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", commentHandler.CreateComment)
			r.Put("/{id}", commentHandler.UpdateComment)
			r.Patch("/{id}", commentHandler.UpdateComment)
			r.Delete("/{id}", commentHandler.DeleteComment)
		})
	})
}
