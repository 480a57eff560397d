package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/roommatefinder/room-service/internal/adapter/http/middleware"
	"github.com/roommatefinder/room-service/internal/platform/metrics"
	"github.com/roommatefinder/room-service/internal/room/domain"
	"github.com/roommatefinder/room-service/internal/room/usecase"
	"go.uber.org/zap"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type roomService interface {
	CreateRoom(ctx context.Context, caller domain.Identity, in usecase.CreateRoomInput) (*domain.Room, error)
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	ListRooms(ctx context.Context) ([]*domain.Room, error)
	UpdateRoom(ctx context.Context, id string, caller domain.Identity, in usecase.UpdateRoomInput) (*domain.Room, error)
	DeleteRoom(ctx context.Context, id string, caller domain.Identity) error
	UploadPhoto(ctx context.Context, id string, caller domain.Identity, fileName string, data []byte) (string, error)
}

type RoomHandler struct {
	rooms   roomService
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewRoomHandler(rooms roomService, m *metrics.Manager, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, metrics: m, logger: logger}
}

type createRoomRequest struct {
	Title      string  `json:"title"`
	Location   string  `json:"location"`
	RentAmount float64 `json:"rentAmount"`
	Available  *bool   `json:"available"`
}

func (h *RoomHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	caller := middleware.IdentityFrom(r.Context())
	room, err := h.rooms.CreateRoom(r.Context(), caller, usecase.CreateRoomInput{
		Title:      req.Title,
		Location:   req.Location,
		RentAmount: req.RentAmount,
		Available:  available,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RoomsCreatedTotal.Inc()
	}
	respondJSON(w, h.logger, http.StatusCreated, toRoomResponse(room))
}

func (h *RoomHandler) HandleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, toRoomResponse(room))
}

func (h *RoomHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.ListRooms(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, toRoomResponses(rooms))
}

type updateRoomRequest struct {
	Title      string  `json:"title"`
	Location   string  `json:"location"`
	RentAmount float64 `json:"rentAmount"`
	Available  *bool   `json:"available"`
}

func (h *RoomHandler) HandleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req updateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	caller := middleware.IdentityFrom(r.Context())
	room, err := h.rooms.UpdateRoom(r.Context(), chi.URLParam(r, "id"), caller, usecase.UpdateRoomInput{
		Title:      req.Title,
		Location:   req.Location,
		RentAmount: req.RentAmount,
		Available:  req.Available,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, toRoomResponse(room))
}

func (h *RoomHandler) HandleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFrom(r.Context())
	if err := h.rooms.DeleteRoom(r.Context(), chi.URLParam(r, "id"), caller); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RoomHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "photo file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "failed to read photo"})
		return
	}

	caller := middleware.IdentityFrom(r.Context())
	url, err := h.rooms.UploadPhoto(r.Context(), chi.URLParam(r, "id"), caller, header.Filename, data)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, map[string]string{"url": url})
}
