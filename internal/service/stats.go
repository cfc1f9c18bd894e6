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

	"github.com/MKhiriev/glory-keeper/internal/locks"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/models"
)

type statsService struct {
	accounts store.AccountStore
	sync     SyncService
	locks    *locks.KeyedMutex
	clock    clockwork.Clock

	mu      sync.RWMutex
	cached  models.Stats
	lastDay time.Time

	logger *logger.Logger
}

// NewStatsService constructs the stats service. syncService may be nil, in
// which case LastSyncAt is never reported.
func NewStatsService(
	accounts store.AccountStore,
	syncService SyncService,
	keyLocks *locks.KeyedMutex,
	clock clockwork.Clock,
	log *logger.Logger,
) StatsService {
	return &statsService{
		accounts: accounts,
		sync:     syncService,
		locks:    keyLocks,
		clock:    clock,
		logger:   log.Component("stats"),
	}
}

func (s *statsService) ActiveCount(ctx context.Context) (int, error) {
	accs, err := s.accounts.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("active count: %w", err)
	}

	n := 0
	for _, acc := range accs {
		if acc.IsActive() {
			n++
		}
	}
	return n, nil
}

// TodayGlory sums GloryToday over the accounts last activated today.
func (s *statsService) TodayGlory(ctx context.Context) (int64, error) {
	accs, err := s.accounts.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("today glory: %w", err)
	}
	return todayGlory(accs, s.clock.Now()), nil
}

// Refresh recomputes the cached stats. On the first refresh of a new local
// day it zeroes GloryToday on every account before computing.
func (s *statsService) Refresh(ctx context.Context) error {
	now := s.clock.Now()
	day := startOfDay(now)

	accs, err := s.accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh stats: %w", err)
	}

	s.mu.RLock()
	rollover := !s.lastDay.IsZero() && !s.lastDay.Equal(day)
	s.mu.RUnlock()

	if rollover {
		if err = s.resetGloryToday(ctx, accs); err != nil {
			return fmt.Errorf("refresh stats: %w", err)
		}
		s.logger.Info().Time("day", day).Msg("day rolled over, daily glory reset")
	}

	stats := models.Stats{
		TotalAccounts: len(accs),
		TodayGlory:    todayGlory(accs, now),
		RefreshedAt:   now.UTC(),
	}
	for _, acc := range accs {
		switch acc.Status {
		case models.StatusActive:
			stats.ActiveAccounts++
		case models.StatusError:
			stats.ErrorAccounts++
		default:
			stats.InactiveAccounts++
		}
		stats.TotalGlory += acc.GloryTotal
	}
	if s.sync != nil {
		stats.LastSyncAt = s.sync.LastSyncAt()
	}

	s.mu.Lock()
	s.cached = stats
	s.lastDay = day
	s.mu.Unlock()

	return nil
}

func (s *statsService) Snapshot() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

// resetGloryToday zeroes GloryToday in the store and in accs.
func (s *statsService) resetGloryToday(ctx context.Context, accs []models.Account) error {
	var errs []error
	for i := range accs {
		if accs[i].GloryToday == 0 {
			continue
		}

		unlock, err := s.locks.Lock(ctx, accs[i].ID)
		if err != nil {
			return err
		}
		updated, err := s.accounts.Update(ctx, accs[i].ID, models.AccountUpdate{ResetGloryToday: true})
		unlock()

		if err != nil {
			if !errors.Is(err, store.ErrAccountNotFound) {
				errs = append(errs, err)
			}
			continue
		}
		accs[i] = updated
	}
	return errors.Join(errs...)
}

func todayGlory(accs []models.Account, now time.Time) int64 {
	var sum int64
	for _, acc := range accs {
		if acc.ActiveOn(now) {
			sum += acc.GloryToday
		}
	}
	return sum
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
