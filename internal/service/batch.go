// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/models"
)

type batchDispatcher struct {
	clock clockwork.Clock
	ids   store.IDGenerator

	// one batch at a time
	slot chan struct{}

	logger *logger.Logger
}

// NewBatchDispatcher returns a dispatcher that calls the operation on one
// target at a time and waits interItemDelay between calls. Concurrent
// Dispatch calls queue behind each other.
func NewBatchDispatcher(clock clockwork.Clock, ids store.IDGenerator, log *logger.Logger) BatchDispatcher {
	return &batchDispatcher{
		clock:  clock,
		ids:    ids,
		slot:   make(chan struct{}, 1),
		logger: log.Component("batch"),
	}
}

// Dispatch runs op on the first min(requestedCount, len(targets)) targets in
// the given order. Item failures are recorded in the result and never stop
// the batch. When ctx is cancelled the outcomes collected so far are
// returned together with ctx.Err().
func (b *batchDispatcher) Dispatch(
	ctx context.Context,
	op Operation,
	targets []models.Account,
	requestedCount int,
	interItemDelay time.Duration,
) (models.BatchResult, error) {
	if len(targets) == 0 {
		return models.BatchResult{}, ErrNoEligibleTargets
	}

	select {
	case b.slot <- struct{}{}:
	case <-ctx.Done():
		return models.BatchResult{}, ctx.Err()
	}
	defer func() { <-b.slot }()

	n := max(min(requestedCount, len(targets)), 0)
	result := models.BatchResult{
		ID:        b.ids.Generate(),
		Requested: requestedCount,
		Outcomes:  make([]models.BatchOutcome, 0, n),
		StartedAt: b.clock.Now().UTC(),
	}

	log := b.logger.With().Str("batch_id", result.ID).Logger()
	log.Info().Int("targets", n).Dur("delay", interItemDelay).Msg("batch started")

	for i, acc := range targets[:n] {
		if i > 0 && interItemDelay > 0 {
			select {
			case <-b.clock.After(interItemDelay):
			case <-ctx.Done():
				result.FinishedAt = b.clock.Now().UTC()
				log.Warn().Int("done", len(result.Outcomes)).Msg("batch cancelled")
				return result, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			result.FinishedAt = b.clock.Now().UTC()
			return result, err
		}

		outcome := b.call(ctx, op, acc)
		if outcome.Success {
			result.Successes++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.FinishedAt = b.clock.Now().UTC()
	log.Info().Int("successes", result.Successes).Int("total", n).Msg("batch finished")

	return result, nil
}

func (b *batchDispatcher) call(ctx context.Context, op Operation, acc models.Account) (outcome models.BatchOutcome) {
	outcome = models.BatchOutcome{AccountID: acc.ID, ExternalUID: acc.ExternalUID}

	defer func() {
		if r := recover(); r != nil {
			outcome.Success = false
			outcome.Message = fmt.Sprintf("operation panicked: %v", r)
		}
	}()

	ok, msg, err := op(ctx, acc)
	if err != nil {
		outcome.Message = err.Error()
		return outcome
	}

	outcome.Success = ok
	outcome.Message = msg
	return outcome
}

// InviteOperation adapts [adapter.RemoteClient.SendInvite] to an
// [Operation] for clanRef.
func InviteOperation(remote adapter.RemoteClient, clanRef string) Operation {
	return func(ctx context.Context, acc models.Account) (bool, string, error) {
		res, err := remote.SendInvite(ctx, acc, clanRef)
		if err != nil {
			return false, "", err
		}
		return res.Success, res.Message, nil
	}
}
