package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shaharia-lab/fanout/internal/service"
)

const errInvalidJSONBody = "invalid JSON body"

// Server holds all dependencies for the REST API handlers.
type Server struct {
	messageSvc      service.MessageService
	notificationSvc service.NotificationLogService
	userSvc         service.UserService
	logger          *slog.Logger
}

// New creates a new API Server backed by the provided services.
func New(
	messageSvc service.MessageService,
	notificationSvc service.NotificationLogService,
	userSvc service.UserService,
	logger *slog.Logger,
) *Server {
	return &Server{
		messageSvc:      messageSvc,
		notificationSvc: notificationSvc,
		userSvc:         userSvc,
		logger:          logger,
	}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	// Messages
	r.Post("/messages", s.handleCreateMessage)
	r.Get("/messages", s.handleListMessages)
	r.Get("/messages/{id}", s.handleGetMessage)

	// Notification log
	r.Get("/notifications", s.handleListNotifications)
	r.Get("/notifications/stats", s.handleNotificationStats)
	r.Get("/notifications/status/{sent}", s.handleListNotificationsBySent)
	r.Get("/notifications/channel/{channel}", s.handleListNotificationsByChannel)

	// Users
	r.Get("/users", s.handleListUsers)
	r.Get("/users/{id}", s.handleGetUser)
	r.Get("/users/{id}/notifications", s.handleListUserNotifications)

	r.Get("/version", s.handleVersion)
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps typed service errors to HTTP statuses. Anything
// else is logged and reported as a 500 with fallback as the message.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *service.ValidationError
	var nfe *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &nfe):
		writeError(w, http.StatusNotFound, nfe.Error())
	default:
		s.logger.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
