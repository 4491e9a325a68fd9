package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hamza13-12/flickfeed/internal/dto/request"
	"github.com/hamza13-12/flickfeed/internal/dto/response"
	"github.com/hamza13-12/flickfeed/internal/permission"
	"github.com/hamza13-12/flickfeed/internal/usecase"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recordingReviews remembers the action class each write was asked to run under.
type recordingReviews struct {
	usecase.ReviewService
	actions []permission.Action
}

func (s *recordingReviews) UpdateReview(ctx context.Context, actor uuid.UUID, action permission.Action, id string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	s.actions = append(s.actions, action)
	return &response.ReviewResponse{ID: id}, nil
}

func (s *recordingReviews) DeleteReview(ctx context.Context, actor uuid.UUID, action permission.Action, id string) error {
	s.actions = append(s.actions, action)
	return nil
}

func TestReviewWritesUseRequestAction(t *testing.T) {
	tests := []struct {
		method string
		body   string
		want   int
	}{
		{http.MethodPut, `{"text":"edited","rating":3}`, http.StatusOK},
		{http.MethodPatch, `{"text":"edited"}`, http.StatusOK},
		{http.MethodDelete, "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			svc := &recordingReviews{}
			h := NewReviewHandler(svc, zap.NewNop())

			req := httptest.NewRequest(tt.method, "/api/reviews/x", strings.NewReader(tt.body))
			req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), "member"))
			rec := httptest.NewRecorder()

			if tt.method == http.MethodDelete {
				h.DeleteReview(rec, req)
			} else {
				h.UpdateReview(rec, req)
			}

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if len(svc.actions) != 1 || svc.actions[0] != permission.ActionWrite {
				t.Errorf("actions = %v, want [write]", svc.actions)
			}
		})
	}
}

func TestReviewWriteRequiresActor(t *testing.T) {
	svc := &recordingReviews{}
	h := NewReviewHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.DeleteReview(rec, httptest.NewRequest(http.MethodDelete, "/api/reviews/x", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if len(svc.actions) != 0 {
		t.Errorf("service should not run without an actor, got %v", svc.actions)
	}
}
