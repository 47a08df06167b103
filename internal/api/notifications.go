package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleListNotifications returns one page of the notification log.
// Accepts ?page=N (zero-based) and ?size=N (default 10, max 100).
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid size")
		return
	}

	result, err := s.notificationSvc.List(r.Context(), page, size)
	if err != nil {
		s.writeServiceError(w, err, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleNotificationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.notificationSvc.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to compute notification stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListNotificationsBySent(w http.ResponseWriter, r *http.Request) {
	sent, err := strconv.ParseBool(chi.URLParam(r, "sent"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "sent must be true or false")
		return
	}

	items, err := s.notificationSvc.ListBySent(r.Context(), sent)
	if err != nil {
		s.writeServiceError(w, err, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListNotificationsByChannel(w http.ResponseWriter, r *http.Request) {
	items, err := s.notificationSvc.ListByChannel(r.Context(), chi.URLParam(r, "channel"))
	if err != nil {
		s.writeServiceError(w, err, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
