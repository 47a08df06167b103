package api

import "net/http"

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userSvc.ListUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := s.userSvc.GetUser(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "failed to get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListUserNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	items, err := s.notificationSvc.ListForUser(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
