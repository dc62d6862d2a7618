package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/version"
)

const (
	webhookSource = "spiriter-chat"

	connectTimeout = 5 * time.Second
	requestTimeout = 30 * time.Second
)

// WebhookAudit posts query events to an external JSON collector. Delivery is
// best effort; the chat response never waits on collector errors upstream.
type WebhookAudit struct {
	Endpoint string

	client *http.Client
}

var _ Audit = (*WebhookAudit)(nil)

type webhookEventData struct {
	Query  string `json:"query"`
	Client string `json:"client"`
}

type webhookEvent struct {
	Event  *webhookEventData `json:"event"`
	Source string            `json:"source"`
	Time   int64             `json:"time"`
}

type Option func(*WebhookAudit)

func WithHTTPClient(client *http.Client) Option {
	return func(w *WebhookAudit) {
		w.client = client
	}
}

func NewWebhookAudit(endpoint string, options ...Option) *WebhookAudit {
	w := &WebhookAudit{Endpoint: endpoint}

	w.client = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}

	for _, option := range options {
		option(w)
	}

	return w
}

func (d *WebhookAudit) Write(q *QueryData) error {
	event := &webhookEvent{
		Event: &webhookEventData{
			Query:  q.Query,
			Client: q.Client,
		},
		Source: webhookSource,
		Time:   q.Timestamp,
	}

	content, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("unable to marshal audit event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint, bytes.NewBuffer(content))
	if err != nil {
		return fmt.Errorf("unable to create request to audit collector: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", fmt.Sprintf("SpiriterChat/%s", version.Version()))

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to send request to audit collector: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if _, err = io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("unable to read audit collector response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unable to write to audit collector: %s (%d)",
			http.StatusText(resp.StatusCode), resp.StatusCode)
	}

	return nil
}
