package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shaharia-lab/fanout/internal/eventbus"
	"github.com/shaharia-lab/fanout/internal/storage"
)

// ReportHandler mails a short dispatch report to an operator address after
// each message fan-out.
type ReportHandler struct {
	transport Transport
	to        string
	logger    *slog.Logger
	timeout   time.Duration
}

// NewReportHandler creates a ReportHandler that sends reports to operator
// through transport.
func NewReportHandler(transport Transport, operator string, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		transport: transport,
		to:        operator,
		logger:    logger.With("component", "report"),
		timeout:   30 * time.Second,
	}
}

// humanSubject returns a readable report subject for a given event.
func humanSubject(e eventbus.Event) string {
	switch e.Type {
	case eventbus.EventMessageDispatched:
		return fmt.Sprintf("Dispatch report: %s message #%s", e.Payload["category"], e.Payload["message_id"])
	case eventbus.EventUsersSeeded:
		return "Users imported"
	}
	return e.Type
}

// Handle is an eventbus.Listener. Events without an operator address are
// ignored.
func (h *ReportHandler) Handle(e eventbus.Event) {
	if h.to == "" || h.transport == nil {
		return
	}

	keys := make([]string, 0, len(e.Payload))
	for k := range e.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, e.Payload[k]))
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	env := Envelope{
		Channel: storage.ChannelEmail,
		To:      h.to,
		Subject: humanSubject(e),
		Body:    strings.Join(lines, "\n"),
	}
	if err := h.transport.Transmit(ctx, env); err != nil {
		h.logger.Error("sending report failed", "event", e.Type, "transport", h.transport.Name(), "error", err)
		return
	}
	h.logger.Info("report sent", "event", e.Type, "to", h.to)
}
