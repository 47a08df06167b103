package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shaharia-lab/fanout/internal/storage"
)

type messageRequest struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// messageResponse is a message together with its delivered notification count.
type messageResponse struct {
	ID                int64            `json:"id"`
	Category          storage.Category `json:"category"`
	Content           string           `json:"content"`
	CreatedAt         time.Time        `json:"created_at"`
	NotificationsSent int64            `json:"notifications_sent"`
}

func (s *Server) toMessageResponse(r *http.Request, m *storage.Message) (messageResponse, error) {
	sent, err := s.messageSvc.CountSent(r.Context(), m.ID)
	if err != nil {
		return messageResponse{}, err
	}
	return messageResponse{
		ID:                m.ID,
		Category:          m.Category,
		Content:           m.Content,
		CreatedAt:         m.CreatedAt,
		NotificationsSent: sent,
	}, nil
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	msg, err := s.messageSvc.CreateMessage(r.Context(), req.Category, req.Content)
	if err != nil {
		s.writeServiceError(w, err, "failed to create message")
		return
	}

	resp, err := s.toMessageResponse(r, msg)
	if err != nil {
		s.writeServiceError(w, err, "failed to count sent notifications")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleListMessages lists all messages, or one category with ?category=.
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	var (
		messages []*storage.Message
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		messages, err = s.messageSvc.ListByCategory(r.Context(), category)
	} else {
		messages, err = s.messageSvc.ListMessages(r.Context())
	}
	if err != nil {
		s.writeServiceError(w, err, "failed to list messages")
		return
	}

	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		resp, err := s.toMessageResponse(r, m)
		if err != nil {
			s.writeServiceError(w, err, "failed to count sent notifications")
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	msg, err := s.messageSvc.GetMessage(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "failed to get message")
		return
	}
	resp, err := s.toMessageResponse(r, msg)
	if err != nil {
		s.writeServiceError(w, err, "failed to count sent notifications")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
