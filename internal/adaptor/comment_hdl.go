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

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.GetComments(r.Context(), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get comments")
		return
	}
	respondList(w, "Comments retrieved successfully", comments)
}

func (h *CommentHandler) GetCommentByID(w http.ResponseWriter, r *http.Request) {
	comment, err := h.service.GetCommentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}
	utils.ResponseSuccess(w, "Comment retrieved successfully", comment)
}

// GetReviewComments handles GET /api/reviews/{id}/comments
func (h *CommentHandler) GetReviewComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.GetReviewComments(r.Context(), chi.URLParam(r, "id"), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get review comments")
		return
	}
	respondList(w, "Comments retrieved successfully", comments)
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}
	utils.ResponseCreated(w, "Comment created successfully", comment)
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	var req request.UpdateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), userID, permission.ActionFromMethod(r.Method), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}
	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), userID, permission.ActionFromMethod(r.Method), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}
	utils.ResponseNoContent(w)
}
