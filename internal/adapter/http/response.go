package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

type roomResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Location   string     `json:"location"`
	RentAmount float64    `json:"rentAmount"`
	OwnerEmail string     `json:"ownerEmail,omitempty"`
	Available  bool       `json:"available"`
	PhotoURLs  []string   `json:"photoUrls,omitempty"`
	LikeCount  int64      `json:"likeCount"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

func toRoomResponse(room *domain.Room) roomResponse {
	resp := roomResponse{
		ID:         room.ID,
		Title:      room.Title,
		Location:   room.Location,
		RentAmount: room.RentAmount,
		OwnerEmail: room.OwnerEmail,
		Available:  room.Available,
		PhotoURLs:  room.PhotoURLs,
		LikeCount:  room.DisplayLikeCount(),
		CreatedAt:  room.CreatedAt,
	}
	if !room.UpdatedAt.IsZero() {
		t := room.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

func toRoomResponses(rooms []*domain.Room) []roomResponse {
	out := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomResponse(room))
	}
	return out
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError maps domain errors onto the stable status codes: 401 for an
// unresolved caller, 400 for self-likes and ledger conflicts, 403 for
// cross-identity access, 404 for a missing room, 500 for everything else.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrOwnRoom),
		errors.Is(err, domain.ErrAlreadyLiked),
		errors.Is(err, domain.ErrNotLiked),
		errors.Is(err, domain.ErrInvalidRoomData):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrRoomNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		respondJSON(w, logger, status, errorResponse{Error: "internal server error"})
		return
	}
	respondJSON(w, logger, status, errorResponse{Error: err.Error()})
}
