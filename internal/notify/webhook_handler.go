// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body when a
// webhook secret is configured.
const SignatureHeader = "X-Glory-Signature"

var ErrWebhookRejected = errors.New("webhook rejected event")

type webhookHandler struct {
	client *utils.HTTPClient
	url    string
	secret string
}

// NewWebhookHandler posts every event as JSON to url.
func NewWebhookHandler(url, secret string, timeout time.Duration) Handler {
	return &webhookHandler{
		client: utils.NewHTTPClient(utils.HTTPClientOptions{
			Timeout:   timeout,
			UserAgent: "glory-keeper-notify",
		}),
		url:    url,
		secret: secret,
	}
}

func (w *webhookHandler) Name() string { return "webhook" }

func (w *webhookHandler) Handle(ctx context.Context, event models.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if w.secret != "" {
		req.SetHeader(SignatureHeader, utils.HashString(body, w.secret))
	}

	resp, err := req.Post(w.url)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrWebhookRejected, resp.StatusCode())
	}

	return nil
}
