// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

const userAgent = "gloryctl"

type apiClient struct {
	client  *utils.HTTPClient
	timeout time.Duration

	logger *logger.Logger
}

// NewAPIClient validates cfg and returns a client of the daemon at
// cfg.ServerURL. Requests are not retried: every call maps to a state
// change the operator asked for exactly once. cfg.Timeout bounds every call
// except start-all, invite batches and sync, which run as long as the
// daemon needs.
func NewAPIClient(cfg config.ClientConfig, log *logger.Logger) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:   strings.TrimRight(cfg.ServerURL, "/"),
		UserAgent: userAgent,
	})
	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}

	return &apiClient{client: httpClient, timeout: cfg.Timeout, logger: log}, nil
}

func (c *apiClient) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	err := c.do(ctx, http.MethodGet, "/api/accounts", nil, &out)
	return out, err
}

func (c *apiClient) AddAccount(ctx context.Context, acc models.NewAccount) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodPost, "/api/accounts", acc, &out)
	return out, err
}

func (c *apiClient) GetAccount(ctx context.Context, id string) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodGet, accountPath(id, ""), nil, &out)
	return out, err
}

func (c *apiClient) UpdateAccount(ctx context.Context, id, clanRef string) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodPatch, accountPath(id, ""), models.AccountPatch{ClanRef: &clanRef}, &out)
	return out, err
}

func (c *apiClient) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, accountPath(id, ""), nil, nil)
}

func (c *apiClient) StartAccount(ctx context.Context, id string) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodPost, accountPath(id, "start"), nil, &out)
	return out, err
}

func (c *apiClient) StopAccount(ctx context.Context, id string) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodPost, accountPath(id, "stop"), nil, &out)
	return out, err
}

func (c *apiClient) ResetAccount(ctx context.Context, id string) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodPost, accountPath(id, "reset"), nil, &out)
	return out, err
}

func (c *apiClient) StartAll(ctx context.Context) (models.StartAllResult, error) {
	var out models.StartAllResult
	err := c.doUnbounded(ctx, http.MethodPost, "/api/farming/start-all", nil, &out)
	return out, err
}

func (c *apiClient) SendInvites(ctx context.Context, body models.InviteBody) (models.BatchResult, error) {
	var out models.BatchResult
	err := c.doUnbounded(ctx, http.MethodPost, "/api/batch/invites", body, &out)
	return out, err
}

func (c *apiClient) Sync(ctx context.Context) (models.SyncReport, error) {
	var out models.SyncReport
	err := c.doUnbounded(ctx, http.MethodPost, "/api/sync", nil, &out)
	return out, err
}

func (c *apiClient) Stats(ctx context.Context) (models.StatsResponse, error) {
	var out models.StatsResponse
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out)
	return out, err
}

func (c *apiClient) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var out models.AppBuildInfo
	err := c.do(ctx, http.MethodGet, "/api/version", nil, &out)
	return out, err
}

// do performs one API call bounded by the configured timeout. out may be nil
// for bodiless answers.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.doUnbounded(ctx, method, path, body, out)
}

func (c *apiClient) doUnbounded(ctx context.Context, method, path string, body, out any) error {
	req := c.client.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode()).Msg("response")

	if resp.IsError() {
		return decodeAPIError(resp)
	}
	return nil
}

func decodeAPIError(resp *resty.Response) error {
	apiErr := &APIError{Status: resp.StatusCode()}

	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Kind != "" {
		apiErr.Kind = body.Kind
		apiErr.Message = body.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(resp.Body()))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}

func accountPath(id, action string) string {
	p := "/api/accounts/" + url.PathEscape(id)
	if action != "" {
		p += "/" + action
	}
	return p
}
