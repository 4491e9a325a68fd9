package wire

import (
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProfile(r chi.Router, profileHandler *adaptor.ProfileHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/profiles", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", profileHandler.GetProfiles)
		r.Get("/feed", profileHandler.Feed)

		r.Get("/{id}", profileHandler.GetProfileByID)
		r.Put("/{id}", profileHandler.UpdateProfile)
		r.Patch("/{id}", profileHandler.UpdateProfile)

		r.Post("/{id}/follow", profileHandler.Follow)
		r.Post("/{id}/unfollow", profileHandler.Unfollow)
		r.Get("/{id}/followers", profileHandler.GetFollowers)
		r.Get("/{id}/following", profileHandler.GetFollowing)
	})
}
