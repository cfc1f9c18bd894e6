// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/notify"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/internal/validators"
	"github.com/MKhiriev/glory-keeper/models"
)

type inviteService struct {
	accounts   store.AccountStore
	remote     adapter.RemoteClient
	dispatcher BatchDispatcher
	validator  validators.Validator
	sink       notify.Sink
	clock      clockwork.Clock
	cfg        config.Batch

	logger *logger.Logger
}

func NewInviteService(
	accounts store.AccountStore,
	remote adapter.RemoteClient,
	dispatcher BatchDispatcher,
	sink notify.Sink,
	clock clockwork.Clock,
	cfg config.Batch,
	log *logger.Logger,
) InviteService {
	return &inviteService{
		accounts:   accounts,
		remote:     remote,
		dispatcher: dispatcher,
		validator:  validators.NewAccountValidator(cfg.MaxCount),
		sink:       sink,
		clock:      clock,
		cfg:        cfg,
		logger:     log.Component("invites"),
	}
}

// DispatchInvites sends req.Count invitations to req.ClanRef, one per active
// account in store order. A zero Count means the configured default and a
// zero Delay the configured inter-item delay.
func (s *inviteService) DispatchInvites(ctx context.Context, req models.InviteRequest) (models.BatchResult, error) {
	req.ClanRef = strings.TrimSpace(req.ClanRef)
	if req.Count == 0 {
		req.Count = s.cfg.DefaultCount
	}
	if req.Delay == 0 {
		req.Delay = s.cfg.InterItemDelay
	}

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.BatchResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	accs, err := s.accounts.List(ctx)
	if err != nil {
		return models.BatchResult{}, fmt.Errorf("dispatch invites: %w", err)
	}

	targets := make([]models.Account, 0, len(accs))
	for _, acc := range accs {
		if acc.IsActive() {
			targets = append(targets, acc)
		}
	}

	result, err := s.dispatcher.Dispatch(ctx, InviteOperation(s.remote, req.ClanRef), targets, req.Count, req.Delay)
	if err != nil {
		if len(result.Outcomes) > 0 {
			s.logger.Err(err).
				Str("func", "*inviteService.DispatchInvites").
				Int("done", len(result.Outcomes)).
				Msg("batch interrupted")
		}
		return result, fmt.Errorf("dispatch invites: %w", err)
	}

	s.sink.Notify(models.Event{
		Kind:    models.EventBatchCompleted,
		Message: fmt.Sprintf("invites to %s: %d of %d succeeded", req.ClanRef, result.Successes, len(result.Outcomes)),
		At:      s.clock.Now().UTC(),
	})

	return result, nil
}
