// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around resty.Client. It embeds *resty.Client to
// expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOptions configures [NewHTTPClient].
type HTTPClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// NewHTTPClient creates an independent resty client with JSON defaults.
// Requests are sent once: a failed call is retried by its caller's next
// scheduled run, never inline.
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if opts.BaseURL != "" {
		c.SetBaseURL(opts.BaseURL)
	}
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}

	return &HTTPClient{Client: c}
}
