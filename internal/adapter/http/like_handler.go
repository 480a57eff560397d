package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/roommatefinder/room-service/internal/adapter/http/middleware"
	"github.com/roommatefinder/room-service/internal/platform/metrics"
	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

type likeService interface {
	Like(ctx context.Context, roomID string, caller domain.Identity) (*domain.LikeResult, error)
	Unlike(ctx context.Context, roomID string, caller domain.Identity) (*domain.LikeResult, error)
}

type likeQueryService interface {
	Status(ctx context.Context, roomID string, caller domain.Identity) (*domain.LikeStatus, error)
	LikedBy(ctx context.Context, roomID string) ([]*domain.Liker, error)
	LikedRooms(ctx context.Context, userID string) ([]*domain.Room, error)
}

type LikeHandler struct {
	likes   likeService
	queries likeQueryService
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewLikeHandler(likes likeService, queries likeQueryService, m *metrics.Manager, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{likes: likes, queries: queries, metrics: m, logger: logger}
}

type likeResponse struct {
	Message   string `json:"message"`
	LikeCount int64  `json:"likeCount"`
	HasLiked  bool   `json:"hasLiked"`
}

type likeStatusResponse struct {
	HasLiked  bool  `json:"hasLiked"`
	LikeCount int64 `json:"likeCount"`
}

type userDetailsResponse struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

type likerResponse struct {
	UserID      string               `json:"userId"`
	CreatedAt   time.Time            `json:"createdAt"`
	UserDetails *userDetailsResponse `json:"userDetails,omitempty"`
}

func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFrom(r.Context())
	result, err := h.likes.Like(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.LikesTotal.Inc()
	}
	respondJSON(w, h.logger, http.StatusOK, likeResponse{
		Message:   "room liked",
		LikeCount: result.LikeCount,
		HasLiked:  result.HasLiked,
	})
}

func (h *LikeHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFrom(r.Context())
	result, err := h.likes.Unlike(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.UnlikesTotal.Inc()
	}
	respondJSON(w, h.logger, http.StatusOK, likeResponse{
		Message:   "like removed",
		LikeCount: result.LikeCount,
		HasLiked:  result.HasLiked,
	})
}

func (h *LikeHandler) HandleLikeStatus(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFrom(r.Context())
	status, err := h.queries.Status(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, likeStatusResponse{
		HasLiked:  status.HasLiked,
		LikeCount: status.LikeCount,
	})
}

func (h *LikeHandler) HandleLikedBy(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFrom(r.Context())
	if caller.IsAnonymous() {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	likers, err := h.queries.LikedBy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]likerResponse, 0, len(likers))
	for _, liker := range likers {
		entry := likerResponse{UserID: liker.UserID, CreatedAt: liker.CreatedAt}
		if liker.Profile != nil {
			entry.UserDetails = &userDetailsResponse{
				Email:    liker.Profile.Email,
				Name:     liker.Profile.Name,
				PhotoURL: liker.Profile.PhotoURL,
			}
		}
		out = append(out, entry)
	}
	respondJSON(w, h.logger, http.StatusOK, out)
}

// HandleLikedRooms serves a user's liked rooms. Callers may only read
// their own list.
func (h *LikeHandler) HandleLikedRooms(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFrom(r.Context())
	if caller.IsAnonymous() {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}

	email := chi.URLParam(r, "email")
	if !strings.EqualFold(email, caller.Email) {
		respondError(w, h.logger, domain.ErrForbidden)
		return
	}

	rooms, err := h.queries.LikedRooms(r.Context(), caller.Key())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, toRoomResponses(rooms))
}
