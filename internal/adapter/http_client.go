// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

const userAgent = "glory-keeper"

// credentialPayload identifies an account to the gateway.
type credentialPayload struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
	Type  string `json:"type,omitempty"`
}

type invitePayload struct {
	credentialPayload
	ClanRef string `json:"clan_ref"`
}

// snapshotAccount is the wire form of one account in a snapshot. Unlike the
// API representation it carries the credential, so accounts created on
// another node can be imported.
type snapshotAccount struct {
	ID           string     `json:"id"`
	UID          string     `json:"uid"`
	Token        string     `json:"token"`
	ClanRef      string     `json:"clan_ref"`
	Type         string     `json:"type"`
	GloryTotal   int64      `json:"glory_total"`
	GloryToday   int64      `json:"glory_today"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

type snapshotEnvelope struct {
	Accounts []snapshotAccount `json:"accounts"`
	SavedAt  time.Time         `json:"saved_at,omitempty"`
}

type httpRemoteClient struct {
	client *utils.HTTPClient
	apiKey string
	logger *logger.Logger
}

// NewHTTPRemoteClient constructs the resty-based [RemoteClient]. The base
// URL is normalised and validated; a missing scheme defaults to http.
func NewHTTPRemoteClient(cfg config.Adapter, log *logger.Logger) (RemoteClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}

	client := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:   baseURL,
		Timeout:   cfg.RequestTimeout,
		UserAgent: userAgent,
	})

	return &httpRemoteClient{
		client: client,
		apiKey: cfg.APIKey,
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRemoteClient) ProbeStatus(ctx context.Context, acc models.Account) (models.ProbeResult, error) {
	var result models.ProbeResult

	resp, err := h.request(ctx).
		SetBody(credentialsOf(acc)).
		SetResult(&result).
		Post("/v1/farming/probe")
	if err != nil {
		return models.ProbeResult{}, fmt.Errorf("%w: probe request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProbeResult{}, err
	}

	result.GloryDelta = max(result.GloryDelta, 0)
	h.logger.Debug().
		Str("account_id", acc.ID).
		Int64("glory_delta", result.GloryDelta).
		Bool("alive", result.Alive).
		Msg("probe answered")

	return result, nil
}

func (h *httpRemoteClient) SendInvite(ctx context.Context, acc models.Account, clanRef string) (models.InviteResult, error) {
	var result models.InviteResult

	resp, err := h.request(ctx).
		SetBody(invitePayload{credentialPayload: credentialsOf(acc), ClanRef: clanRef}).
		SetResult(&result).
		Post("/v1/clans/invites")
	if err != nil {
		return models.InviteResult{}, fmt.Errorf("%w: invite request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.InviteResult{}, err
	}

	return result, nil
}

func (h *httpRemoteClient) FetchSnapshot(ctx context.Context) ([]models.Account, error) {
	var envelope snapshotEnvelope

	resp, err := h.request(ctx).
		SetResult(&envelope).
		Get("/v1/sync/accounts")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch snapshot request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	accounts := make([]models.Account, 0, len(envelope.Accounts))
	for _, sa := range envelope.Accounts {
		if sa.ID == "" {
			return nil, fmt.Errorf("%w: %w: snapshot entry without id", ErrNetwork, ErrBadResponse)
		}
		accounts = append(accounts, sa.toModel())
	}

	return accounts, nil
}

func (h *httpRemoteClient) PushSnapshot(ctx context.Context, accounts []models.Account) error {
	envelope := snapshotEnvelope{
		Accounts: make([]snapshotAccount, 0, len(accounts)),
		SavedAt:  time.Now().UTC(),
	}
	for _, acc := range accounts {
		envelope.Accounts = append(envelope.Accounts, snapshotFromModel(acc))
	}

	resp, err := h.request(ctx).
		SetBody(envelope).
		Post("/v1/sync/accounts")
	if err != nil {
		return fmt.Errorf("%w: push snapshot request: %w", ErrNetwork, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if h.apiKey != "" {
		req.SetHeader("X-Api-Key", h.apiKey)
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader("X-Request-Id", traceID)
	}
	return req
}

func credentialsOf(acc models.Account) credentialPayload {
	return credentialPayload{UID: acc.ExternalUID, Token: acc.Credential, Type: string(acc.Type)}
}

func (sa snapshotAccount) toModel() models.Account {
	return models.Account{
		ID:           sa.ID,
		ExternalUID:  sa.UID,
		Credential:   sa.Token,
		ClanRef:      sa.ClanRef,
		Type:         models.AccountType(sa.Type),
		GloryTotal:   max(sa.GloryTotal, 0),
		GloryToday:   max(sa.GloryToday, 0),
		CreatedAt:    sa.CreatedAt,
		LastActiveAt: sa.LastActiveAt,
	}
}

func snapshotFromModel(acc models.Account) snapshotAccount {
	return snapshotAccount{
		ID:           acc.ID,
		UID:          acc.ExternalUID,
		Token:        acc.Credential,
		ClanRef:      acc.ClanRef,
		Type:         string(acc.Type),
		GloryTotal:   acc.GloryTotal,
		GloryToday:   acc.GloryToday,
		CreatedAt:    acc.CreatedAt,
		LastActiveAt: acc.LastActiveAt,
	}
}
