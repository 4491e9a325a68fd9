package adaptor

import (
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/dto/request"
	"github.com/hamza13-12/flickfeed/internal/permission"
	"github.com/hamza13-12/flickfeed/internal/usecase"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log.With(zap.String("handler", "profile")),
	}
}

// GetProfiles handles GET /api/profiles
func (h *ProfileHandler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.GetProfiles(r.Context(), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get profiles")
		return
	}
	respondList(w, "Profiles retrieved successfully", profiles)
}

// GetProfileByID handles GET /api/profiles/{id}
func (h *ProfileHandler) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfileByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}
	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// UpdateProfile handles PUT and PATCH /api/profiles/{id}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, permission.ActionFromMethod(r.Method), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}
	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}

// Follow handles POST /api/profiles/{id}/follow
func (h *ProfileHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Follow(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "follow")
		return
	}
	utils.ResponseSuccess(w, "You are now following "+profile.User.Username, profile)
}

// Unfollow handles POST /api/profiles/{id}/unfollow
func (h *ProfileHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Unfollow(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "unfollow")
		return
	}
	utils.ResponseSuccess(w, "You are no longer following "+profile.User.Username, profile)
}

// GetFollowers handles GET /api/profiles/{id}/followers
func (h *ProfileHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.GetFollowers(r.Context(), chi.URLParam(r, "id"), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get followers")
		return
	}
	respondList(w, "Followers retrieved successfully", profiles)
}

// GetFollowing handles GET /api/profiles/{id}/following
func (h *ProfileHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.GetFollowing(r.Context(), chi.URLParam(r, "id"), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get following")
		return
	}
	respondList(w, "Following retrieved successfully", profiles)
}

// Feed handles GET /api/profiles/feed
func (h *ProfileHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.Feed(r.Context(), userID, request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get feed")
		return
	}
	respondList(w, "Feed retrieved successfully", reviews)
}
