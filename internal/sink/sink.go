// Package sink delivers finished submissions to the remote appointment
// spreadsheet.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ashwink/aadhaar-kiosk/internal/aadhaar"
)

// Sink defines the interface for persisting a finished submission to a
// remote store.
type Sink interface {
	// Submit serializes the submission and writes it out of band.
	Submit(ctx context.Context, sub aadhaar.Submission) error
}

// Webhook implements Sink against a Google Apps Script web-app deployment
// backing a spreadsheet. The endpoint URL is injected at construction.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a new Webhook sink for the given deployment URL.
func NewWebhook(url string) (*Webhook, error) {
	if url == "" {
		return nil, fmt.Errorf("sink endpoint URL is required")
	}
	return &Webhook{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Submit POSTs the submission as JSON. Apps Script web apps answer through
// an opaque redirect chain whose status says nothing about whether the row
// was written, so only transport errors fail the call; the response is
// drained and discarded.
func (w *Webhook) Submit(ctx context.Context, sub aadhaar.Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting submission: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return nil
}
