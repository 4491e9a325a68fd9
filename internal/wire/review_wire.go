package wire

import (
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.GetReviews)
		r.Get("/{id}", reviewHandler.GetReviewByID)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", reviewHandler.CreateReview)
			r.Put("/{id}", reviewHandler.UpdateReview)
			r.Patch("/{id}", reviewHandler.UpdateReview)
			r.Delete("/{id}", reviewHandler.DeleteReview)

			r.Post("/{id}/like", reviewHandler.Like)
			r.Post("/{id}/unlike", reviewHandler.Unlike)
			r.Get("/{id}/comments", commentHandler.GetReviewComments)
		})
	})
}
