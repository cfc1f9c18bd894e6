// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/locks"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/notify"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/models"
)

// farmWorker is the handle of one running farming goroutine.
type farmWorker struct {
	cancel   context.CancelFunc
	done     chan struct{}
	progress atomic.Int64 // unix nanoseconds of the last successful probe
}

func (w *farmWorker) touch(t time.Time) {
	w.progress.Store(t.UnixNano())
}

func (w *farmWorker) lastProgress() time.Time {
	return time.Unix(0, w.progress.Load())
}

func (w *farmWorker) exited() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

type farmingService struct {
	accounts store.AccountStore
	remote   adapter.RemoteClient
	sink     notify.Sink
	locks    *locks.KeyedMutex
	clock    clockwork.Clock
	cfg      config.Farming

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu      sync.Mutex
	workers map[string]*farmWorker

	logger *logger.Logger
}

// NewFarmingService constructs the orchestrator. keyLocks must be the same
// instance the sync reconciler uses, so that merges and farming writes on
// one account never interleave.
func NewFarmingService(
	accounts store.AccountStore,
	remote adapter.RemoteClient,
	sink notify.Sink,
	keyLocks *locks.KeyedMutex,
	clock clockwork.Clock,
	cfg config.Farming,
	log *logger.Logger,
) FarmingService {
	baseCtx, cancel := context.WithCancel(context.Background())

	return &farmingService{
		accounts:   accounts,
		remote:     remote,
		sink:       sink,
		locks:      keyLocks,
		clock:      clock,
		cfg:        cfg,
		baseCtx:    baseCtx,
		baseCancel: cancel,
		workers:    make(map[string]*farmWorker),
		logger:     log.Component("farming"),
	}
}

func (f *farmingService) Start(ctx context.Context, id string) (models.Account, error) {
	unlock, err := f.locks.Lock(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	defer unlock()

	acc, err := f.accounts.Get(ctx, id)
	if err != nil {
		return models.Account{}, fmt.Errorf("start farming: %w", err)
	}

	switch acc.Status {
	case models.StatusActive:
		return acc, fmt.Errorf("start farming %s: %w", id, ErrAlreadyActive)
	case models.StatusError:
		return acc, fmt.Errorf("start farming %s: %w", id, ErrAccountInError)
	}

	return f.activateLocked(ctx, acc)
}

// activateLocked marks acc active and spawns its worker. The caller holds
// the account lock.
func (f *farmingService) activateLocked(ctx context.Context, acc models.Account) (models.Account, error) {
	if f.baseCtx.Err() != nil {
		return acc, ErrShuttingDown
	}

	now := f.clock.Now().UTC()
	acc, err := f.accounts.Update(ctx, acc.ID, models.AccountUpdate{
		Status:       models.StatusPtr(models.StatusActive),
		LastActiveAt: &now,
	})
	if err != nil {
		return models.Account{}, fmt.Errorf("activate account: %w", err)
	}

	f.spawn(acc)

	f.logger.Info().Str("account_id", acc.ID).Msg("farming started")
	f.sink.Notify(models.Event{
		Kind:      models.EventStarted,
		AccountID: acc.ID,
		Message:   fmt.Sprintf("farming started for %s", acc.ExternalUID),
		At:        now,
	})

	return acc, nil
}

func (f *farmingService) Stop(ctx context.Context, id string) (models.Account, error) {
	unlock, err := f.locks.Lock(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	defer unlock()

	acc, err := f.accounts.Get(ctx, id)
	if err != nil {
		return models.Account{}, fmt.Errorf("stop farming: %w", err)
	}

	if acc.Status != models.StatusActive {
		return acc, nil
	}

	if err = f.stopWorker(ctx, id); err != nil {
		return acc, fmt.Errorf("stop farming %s: %w", id, err)
	}

	acc, err = f.accounts.Update(ctx, id, models.AccountUpdate{Status: models.StatusPtr(models.StatusInactive)})
	if err != nil {
		return models.Account{}, fmt.Errorf("deactivate account: %w", err)
	}

	f.logger.Info().Str("account_id", id).Msg("farming stopped")
	f.sink.Notify(models.Event{
		Kind:      models.EventStopped,
		AccountID: id,
		Message:   fmt.Sprintf("farming stopped for %s", acc.ExternalUID),
		At:        f.clock.Now().UTC(),
	})

	return acc, nil
}

func (f *farmingService) Reset(ctx context.Context, id string) (models.Account, error) {
	unlock, err := f.locks.Lock(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	defer unlock()

	acc, err := f.accounts.Get(ctx, id)
	if err != nil {
		return models.Account{}, fmt.Errorf("reset account: %w", err)
	}

	switch acc.Status {
	case models.StatusActive:
		return acc, fmt.Errorf("reset account %s: %w", id, ErrAlreadyActive)
	case models.StatusInactive:
		return acc, fmt.Errorf("reset account %s: %w", id, ErrAlreadyInactive)
	}

	acc, err = f.accounts.Update(ctx, id, models.AccountUpdate{Status: models.StatusPtr(models.StatusInactive)})
	if err != nil {
		return models.Account{}, fmt.Errorf("reset account: %w", err)
	}

	f.logger.Info().Str("account_id", id).Msg("account reset")
	return acc, nil
}

func (f *farmingService) Delete(ctx context.Context, id string) error {
	unlock, err := f.locks.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err = f.accounts.Get(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if err = f.stopWorker(ctx, id); err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}

	if err = f.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	f.logger.Info().Str("account_id", id).Msg("account deleted")
	return nil
}

func (f *farmingService) StartAll(ctx context.Context) (models.StartAllResult, error) {
	result := models.StartAllResult{Started: []string{}, Failed: []models.FarmingFailure{}}

	accs, err := f.accounts.List(ctx)
	if err != nil {
		return result, fmt.Errorf("start all: %w", err)
	}

	first := true
	for _, acc := range accs {
		if acc.Status != models.StatusInactive {
			continue
		}

		if !first && f.cfg.StartAllDelay > 0 {
			select {
			case <-f.clock.After(f.cfg.StartAllDelay):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
		first = false

		if _, err = f.Start(ctx, acc.ID); err != nil {
			f.logger.Err(err).Str("func", "*farmingService.StartAll").Str("account_id", acc.ID).Msg("account not started")
			result.Failed = append(result.Failed, models.FarmingFailure{
				AccountID: acc.ID,
				Err:       err,
				Message:   err.Error(),
			})
			continue
		}
		result.Started = append(result.Started, acc.ID)
	}

	f.logger.Info().
		Int("started", len(result.Started)).
		Int("failed", len(result.Failed)).
		Msg("start all finished")

	return result, nil
}

func (f *farmingService) HealthCheckTick(ctx context.Context) error {
	accs, err := f.accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	var errs []error
	for _, acc := range accs {
		if acc.Status != models.StatusActive {
			continue
		}
		if err = f.checkWorker(ctx, acc.ID); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (f *farmingService) checkWorker(ctx context.Context, id string) error {
	unlock, err := f.locks.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	acc, err := f.accounts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("health check %s: %w", id, err)
	}
	if acc.Status != models.StatusActive {
		return nil
	}

	w := f.worker(id)
	var reason string
	switch {
	case w == nil:
		reason = "no live worker"
	case w.exited():
		reason = "worker exited"
	case f.cfg.StaleAfter > 0 && f.clock.Since(w.lastProgress()) > f.cfg.StaleAfter:
		reason = fmt.Sprintf("no progress for %s", f.clock.Since(w.lastProgress()).Round(time.Second))
	default:
		return nil
	}

	if err = f.stopWorker(ctx, id); err != nil {
		return fmt.Errorf("health check %s: %w", id, err)
	}

	f.logger.Warn().Str("account_id", id).Str("reason", reason).Msg("unhealthy worker")
	return f.demoteLocked(ctx, id, reason)
}

func (f *farmingService) Recover(ctx context.Context) error {
	accs, err := f.accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("recover: %w", err)
	}

	var errs []error
	for _, acc := range accs {
		if acc.Status != models.StatusActive || f.worker(acc.ID) != nil {
			continue
		}
		if err = f.recoverAccount(ctx, acc.ID); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (f *farmingService) recoverAccount(ctx context.Context, id string) error {
	unlock, err := f.locks.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	acc, err := f.accounts.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("recover %s: %w", id, err)
	}
	if acc.Status != models.StatusActive || f.worker(id) != nil {
		return nil
	}

	if f.cfg.ResumeOnBoot {
		_, err = f.activateLocked(ctx, acc)
		return err
	}

	if _, err = f.accounts.Update(ctx, id, models.AccountUpdate{Status: models.StatusPtr(models.StatusInactive)}); err != nil {
		return fmt.Errorf("recover %s: %w", id, err)
	}
	f.logger.Info().Str("account_id", id).Msg("account was active at shutdown, set inactive")
	return nil
}

func (f *farmingService) Shutdown(ctx context.Context) error {
	f.baseCancel()

	f.mu.Lock()
	pending := make([]*farmWorker, 0, len(f.workers))
	for _, w := range f.workers {
		pending = append(pending, w)
	}
	f.mu.Unlock()

	for _, w := range pending {
		select {
		case <-w.done:
		case <-ctx.Done():
			f.logger.Warn().Int("workers", len(pending)).Msg("farming shutdown timed out")
			return ctx.Err()
		}
	}

	f.logger.Info().Int("workers", len(pending)).Msg("farming workers stopped")
	return nil
}

func (f *farmingService) ActiveWorkers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.workers)
}

func (f *farmingService) worker(id string) *farmWorker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.workers[id]
}

func (f *farmingService) spawn(acc models.Account) {
	ctx, cancel := context.WithCancel(f.baseCtx)
	w := &farmWorker{cancel: cancel, done: make(chan struct{})}
	w.touch(f.clock.Now())

	f.mu.Lock()
	f.workers[acc.ID] = w
	f.mu.Unlock()

	go f.run(ctx, acc, w)
}

// stopWorker cancels the worker of id, if any, and waits until it has
// exited. The caller holds the account lock.
func (f *farmingService) stopWorker(ctx context.Context, id string) error {
	w := f.worker(id)
	if w == nil {
		return nil
	}

	w.cancel()
	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	f.mu.Lock()
	if f.workers[id] == w {
		delete(f.workers, id)
	}
	f.mu.Unlock()

	return nil
}

func (f *farmingService) run(ctx context.Context, acc models.Account, w *farmWorker) {
	log := f.logger.With().Str("account_id", acc.ID).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("farming worker panicked")
		}

		f.mu.Lock()
		if f.workers[acc.ID] == w {
			delete(f.workers, acc.ID)
		}
		f.mu.Unlock()
		close(w.done)
	}()

	ticker := f.clock.NewTicker(f.cfg.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if !f.probe(ctx, acc, w) {
				return
			}
		}
	}
}

// probe performs one status probe and records its outcome. It returns false
// when the worker must exit.
func (f *farmingService) probe(ctx context.Context, acc models.Account, w *farmWorker) bool {
	res, probeErr := f.remote.ProbeStatus(ctx, acc)
	if ctx.Err() != nil {
		return false
	}

	unlock, err := f.locks.Lock(ctx, acc.ID)
	if err != nil {
		return false
	}
	defer unlock()

	// Stop may have cancelled us while we waited for the lock.
	if ctx.Err() != nil {
		return false
	}

	if probeErr != nil || !res.Alive {
		reason := "remote session is no longer alive"
		if probeErr != nil {
			reason = fmt.Sprintf("probe failed: %v", probeErr)
		}
		f.logger.Warn().Str("account_id", acc.ID).Str("reason", reason).Msg("farming failed")
		_ = f.demoteLocked(ctx, acc.ID, reason)
		return false
	}

	if res.GloryDelta > 0 {
		_, err = f.accounts.Update(ctx, acc.ID, models.AccountUpdate{
			AddGloryTotal: res.GloryDelta,
			AddGloryToday: res.GloryDelta,
		})
		if err != nil {
			f.logger.Err(err).Str("func", "*farmingService.probe").Str("account_id", acc.ID).Msg("error recording glory")
			return true
		}
	}

	w.touch(f.clock.Now())
	return true
}

// demoteLocked moves id to the error state. The caller holds the account
// lock.
func (f *farmingService) demoteLocked(ctx context.Context, id, reason string) error {
	if _, err := f.accounts.Update(ctx, id, models.AccountUpdate{Status: models.StatusPtr(models.StatusError)}); err != nil {
		f.logger.Err(err).Str("func", "*farmingService.demoteLocked").Str("account_id", id).Msg("error demoting account")
		return fmt.Errorf("demote %s: %w", id, err)
	}

	f.sink.Notify(models.Event{
		Kind:      models.EventError,
		AccountID: id,
		Message:   reason,
		At:        f.clock.Now().UTC(),
	})
	return nil
}
