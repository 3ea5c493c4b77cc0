package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/polvex/pharmatrack/internal/domain/model"
)

// Notifier forwards audit events to an external collector.
type Notifier interface {
	Notify(ctx context.Context, event model.AuditEvent) error
}

// HTTPNotifier implements Notifier via HTTP API.
type HTTPNotifier struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// payload mirrors JSON body accepted by the audit collector.
type payload struct {
	Action      string    `json:"action"`
	EntityType  string    `json:"entityType"`
	EntityID    int64     `json:"entityId"`
	Description string    `json:"description"`
	ActorID     int64     `json:"actorId"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewHTTPNotifier creates HTTP audit notifier with default timeout.
func NewHTTPNotifier(baseURL string, logger *slog.Logger) (*HTTPNotifier, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse audit url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("audit url must be absolute")
	}
	return &HTTPNotifier{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Notify posts the event to the collector.
func (c *HTTPNotifier) Notify(ctx context.Context, event model.AuditEvent) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/audit/events")

	body, err := json.Marshal(payload{
		Action:      event.Action,
		EntityType:  event.EntityType,
		EntityID:    event.EntityID,
		Description: event.Description,
		ActorID:     event.ActorID,
		Timestamp:   event.Timestamp,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("audit delivery failed", slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return fmt.Errorf("audit collector error: %s", resp.Status)
	}
	return nil
}

// NopNotifier discards events; used when no collector is configured.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, model.AuditEvent) error { return nil }
