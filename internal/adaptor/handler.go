package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/dto/response"
	"github.com/hamza13-12/flickfeed/internal/usecase"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Profile *ProfileHandler
	Movie   *MovieHandler
	Review  *ReviewHandler
	Comment *CommentHandler
	Like    *LikeHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Profile: NewProfileHandler(service.Profile, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Review:  NewReviewHandler(service.Review, log),
		Comment: NewCommentHandler(service.Comment, log),
		Like:    NewLikeHandler(service.Like, log),
	}
}

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// actor returns the authenticated user id, writing a 401 when it is missing.
func actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

func respondList[T any](w http.ResponseWriter, message string, page *response.PaginatedResponse[T]) {
	utils.ResponsePaginated(w, message, page.Data, page.Pagination)
}

// handleServiceError maps usecase error kinds to responses. Client errors
// are logged at warn, everything else at error and hidden behind a 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var fields map[string]string
	var uerr *usecase.Error
	if errors.As(err, &uerr) {
		fields = uerr.Fields
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" rejected", zap.Error(err))
		if fields != nil {
			utils.ResponseBadRequest(w, err.Error(), fields)
			return
		}
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
