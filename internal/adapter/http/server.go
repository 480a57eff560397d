package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/roommatefinder/room-service/internal/adapter/http/middleware"
	"github.com/roommatefinder/room-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// NewRouter wires the full HTTP surface. Authentication is resolved once
// for every request; mutating usecases enforce the resolved-identity
// requirement themselves so the 401 policy lives in one place.
func NewRouter(
	roomHandler *RoomHandler,
	likeHandler *LikeHandler,
	jwtSecret string,
	m *metrics.Manager,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Tracing)
	if m != nil {
		r.Use(middleware.Metrics(m))
	}
	r.Use(middleware.Identity(jwtSecret, logger))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("Room Mate Finder API is running!"))
	})

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", roomHandler.HandleCreateRoom)
		r.Get("/", roomHandler.HandleListRooms)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", roomHandler.HandleGetRoom)
			r.Put("/", roomHandler.HandleUpdateRoom)
			r.Delete("/", roomHandler.HandleDeleteRoom)
			r.Post("/photos", roomHandler.HandleUploadPhoto)

			r.Post("/like", likeHandler.HandleLike)
			r.Delete("/like", likeHandler.HandleUnlike)
			r.Get("/like-status", likeHandler.HandleLikeStatus)
			r.Get("/likes", likeHandler.HandleLikedBy)
		})
	})

	r.Get("/user/likes/{email}", likeHandler.HandleLikedRooms)

	return r
}
