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

type LikeHandler struct {
	service usecase.LikeService
	log     *zap.Logger
}

func NewLikeHandler(service usecase.LikeService, log *zap.Logger) *LikeHandler {
	return &LikeHandler{
		service: service,
		log:     log.With(zap.String("handler", "like")),
	}
}

func (h *LikeHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := h.service.GetLikes(r.Context(), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get likes")
		return
	}
	respondList(w, "Likes retrieved successfully", likes)
}

func (h *LikeHandler) GetLikeByID(w http.ResponseWriter, r *http.Request) {
	like, err := h.service.GetLikeByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get like")
		return
	}
	utils.ResponseSuccess(w, "Like retrieved successfully", like)
}

func (h *LikeHandler) CreateLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	var req request.CreateLikeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	like, err := h.service.CreateLike(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create like")
		return
	}
	utils.ResponseCreated(w, "Review liked", like)
}

func (h *LikeHandler) DeleteLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteLike(r.Context(), userID, permission.ActionFromMethod(r.Method), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete like")
		return
	}
	utils.ResponseNoContent(w)
}
