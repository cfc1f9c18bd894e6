// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/locks"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/notify"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/models"
)

// timestampPrecision is the finest resolution every supported store keeps.
const timestampPrecision = time.Microsecond

type syncReconciler struct {
	accounts store.AccountStore
	remote   adapter.RemoteClient
	sink     notify.Sink
	locks    *locks.KeyedMutex
	clock    clockwork.Clock

	// one reconcile at a time
	slot chan struct{}

	mu         sync.RWMutex
	lastSyncAt *time.Time

	logger *logger.Logger
}

// NewSyncReconciler constructs the reconciler. keyLocks must be shared with
// the farming service.
func NewSyncReconciler(
	accounts store.AccountStore,
	remote adapter.RemoteClient,
	sink notify.Sink,
	keyLocks *locks.KeyedMutex,
	clock clockwork.Clock,
	log *logger.Logger,
) SyncService {
	return &syncReconciler{
		accounts: accounts,
		remote:   remote,
		sink:     sink,
		locks:    keyLocks,
		clock:    clock,
		slot:     make(chan struct{}, 1),
		logger:   log.Component("sync"),
	}
}

// Reconcile merges the remote snapshot into the local store.
//
// Entries present on both sides are merged last-write-wins on LastActiveAt,
// with ties going to the remote copy. When the remote copy wins, ClanRef and
// LastActiveAt are copied and GloryTotal is raised to the remote value;
// it is never lowered. Remote-only entries are created locally as inactive.
// Local-only entries are left alone. A failed fetch writes nothing.
func (s *syncReconciler) Reconcile(ctx context.Context) (models.SyncReport, error) {
	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		return models.SyncReport{}, ctx.Err()
	}
	defer func() { <-s.slot }()

	local, err := s.accounts.List(ctx)
	if err != nil {
		return models.SyncReport{}, fmt.Errorf("list local accounts: %w", err)
	}

	remote, err := s.remote.FetchSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, adapter.ErrNetwork) {
			err = fmt.Errorf("%w: %w", adapter.ErrNetwork, err)
		}
		s.logger.Err(err).Str("func", "*syncReconciler.Reconcile").Msg("error fetching remote snapshot")
		s.sink.Notify(models.Event{
			Kind:    models.EventError,
			Message: fmt.Sprintf("sync skipped: %v", err),
			At:      s.clock.Now().UTC(),
		})
		return models.SyncReport{}, fmt.Errorf("fetch remote snapshot: %w", err)
	}

	byID := make(map[string]models.Account, len(local))
	for _, acc := range local {
		byID[acc.ID] = acc
	}

	report := models.SyncReport{Local: len(local), Remote: len(remote)}
	var errs []error

	for _, r := range remote {
		if r.ID == "" {
			continue
		}

		l, ok := byID[r.ID]
		switch {
		case !ok:
			imported, err := s.importRemote(ctx, r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if imported {
				report.Imported++
			} else {
				report.Unchanged++
			}
		case remoteWins(l, r):
			changed, err := s.mergeRemote(ctx, r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if changed {
				report.Updated++
			} else {
				report.Unchanged++
			}
		default:
			report.Unchanged++
		}
	}

	if err = errors.Join(errs...); err != nil {
		s.sink.Notify(models.Event{
			Kind:    models.EventError,
			Message: fmt.Sprintf("sync incomplete: %d write(s) failed", len(errs)),
			At:      s.clock.Now().UTC(),
		})
		return report, fmt.Errorf("reconcile: %w", err)
	}

	now := s.clock.Now().UTC()
	report.SyncedAt = now

	s.mu.Lock()
	s.lastSyncAt = &now
	s.mu.Unlock()

	s.logger.Info().
		Int("imported", report.Imported).
		Int("updated", report.Updated).
		Int("unchanged", report.Unchanged).
		Msg("sync completed")
	s.sink.Notify(models.Event{
		Kind:    models.EventSyncCompleted,
		Message: fmt.Sprintf("sync completed: %d imported, %d updated", report.Imported, report.Updated),
		At:      now,
	})

	return report, nil
}

func (s *syncReconciler) LastSyncAt() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastSyncAt == nil {
		return nil
	}
	t := *s.lastSyncAt
	return &t
}

func (s *syncReconciler) importRemote(ctx context.Context, r models.Account) (bool, error) {
	unlock, err := s.locks.Lock(ctx, r.ID)
	if err != nil {
		return false, err
	}
	defer unlock()

	_, err = s.accounts.Create(ctx, models.NewAccount{
		ID:           r.ID,
		ExternalUID:  r.ExternalUID,
		Credential:   r.Credential,
		ClanRef:      r.ClanRef,
		Type:         r.Type,
		GloryTotal:   max(r.GloryTotal, 0),
		CreatedAt:    r.CreatedAt,
		LastActiveAt: r.LastActiveAt,
	})
	if err != nil {
		if errors.Is(err, store.ErrAccountExists) {
			s.logger.Warn().Str("account_id", r.ID).Str("uid", r.ExternalUID).Msg("remote account clashes with a local one, skipped")
			return false, nil
		}
		return false, fmt.Errorf("import %s: %w", r.ID, err)
	}

	return true, nil
}

// mergeRemote applies the merge-owned fields of r to the local record. The
// record is re-read under the account lock so concurrent glory increments
// are kept.
func (s *syncReconciler) mergeRemote(ctx context.Context, r models.Account) (bool, error) {
	unlock, err := s.locks.Lock(ctx, r.ID)
	if err != nil {
		return false, err
	}
	defer unlock()

	cur, err := s.accounts.Get(ctx, r.ID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("merge %s: %w", r.ID, err)
	}
	if !remoteWins(cur, r) {
		return false, nil
	}

	upd := mergeUpdate(cur, r)
	if upd.IsEmpty() {
		return false, nil
	}

	if _, err = s.accounts.Update(ctx, r.ID, upd); err != nil {
		return false, fmt.Errorf("merge %s: %w", r.ID, err)
	}
	return true, nil
}

// remoteWins reports whether the remote copy is at least as recent as the
// local one. A nil LastActiveAt is older than any timestamp.
func remoteWins(local, remote models.Account) bool {
	switch {
	case remote.LastActiveAt == nil:
		return local.LastActiveAt == nil
	case local.LastActiveAt == nil:
		return true
	default:
		l := local.LastActiveAt.Truncate(timestampPrecision)
		r := remote.LastActiveAt.Truncate(timestampPrecision)
		return !r.Before(l)
	}
}

// mergeUpdate returns the writes needed to bring cur in line with the
// winning remote copy r.
func mergeUpdate(cur, r models.Account) models.AccountUpdate {
	var upd models.AccountUpdate

	if cur.ClanRef != r.ClanRef {
		ref := r.ClanRef
		upd.ClanRef = &ref
	}
	if r.LastActiveAt != nil && !sameInstant(cur.LastActiveAt, r.LastActiveAt) {
		t := r.LastActiveAt.UTC()
		upd.LastActiveAt = &t
	}
	if r.GloryTotal > cur.GloryTotal {
		upd.AddGloryTotal = r.GloryTotal - cur.GloryTotal
	}

	return upd
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Truncate(timestampPrecision).Equal(b.Truncate(timestampPrecision))
}
