package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const gatewayTimeout = 10 * time.Second

// SMSGatewayTransport delivers SMS envelopes by posting them to an HTTP gateway.
type SMSGatewayTransport struct {
	config GatewayConfig
	client *http.Client
}

// NewSMSGatewayTransport creates an SMSGatewayTransport with a 10-second
// HTTP timeout.
func NewSMSGatewayTransport(config GatewayConfig) *SMSGatewayTransport {
	return &SMSGatewayTransport{
		config: config,
		client: &http.Client{Timeout: gatewayTimeout},
	}
}

// Name returns the transport identifier.
func (t *SMSGatewayTransport) Name() string { return "sms-gateway" }

// Transmit posts {"to", "body"} to the gateway.
func (t *SMSGatewayTransport) Transmit(ctx context.Context, env Envelope) error {
	if env.To == "" {
		return errors.New("sms-gateway: empty phone number")
	}
	payload := map[string]string{
		"to":   env.To,
		"body": env.Body,
	}
	headers := map[string]string{}
	if t.config.Token != "" {
		headers["Authorization"] = "Bearer " + t.config.Token
	}
	return postJSON(ctx, t.client, t.Name(), t.config.URL, headers, payload)
}

// PushGatewayTransport delivers push envelopes by posting them to an HTTP
// push service. Each request carries a fresh Idempotency-Key.
type PushGatewayTransport struct {
	config GatewayConfig
	client *http.Client
}

// NewPushGatewayTransport creates a PushGatewayTransport with a 10-second
// HTTP timeout.
func NewPushGatewayTransport(config GatewayConfig) *PushGatewayTransport {
	return &PushGatewayTransport{
		config: config,
		client: &http.Client{Timeout: gatewayTimeout},
	}
}

// Name returns the transport identifier.
func (t *PushGatewayTransport) Name() string { return "push-gateway" }

// Transmit posts {"user_id", "title", "body"} to the push service.
func (t *PushGatewayTransport) Transmit(ctx context.Context, env Envelope) error {
	if env.To == "" {
		return errors.New("push-gateway: empty user id")
	}
	payload := map[string]string{
		"user_id": env.To,
		"title":   env.Subject,
		"body":    env.Body,
	}
	headers := map[string]string{
		"Idempotency-Key": uuid.NewString(),
	}
	if t.config.Token != "" {
		headers["Authorization"] = "key=" + t.config.Token
	}
	return postJSON(ctx, t.client, t.Name(), t.config.URL, headers, payload)
}

func postJSON(ctx context.Context, client *http.Client, name, url string, headers map[string]string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal payload: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: send request: %w", name, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: unexpected status %d: %s", name, resp.StatusCode, string(respBody))
	}
	return nil
}
