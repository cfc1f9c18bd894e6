// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Stats is an aggregate view over all accounts, refreshed periodically.
type Stats struct {
	TotalAccounts    int        `json:"total_accounts"`
	ActiveAccounts   int        `json:"active_accounts"`
	InactiveAccounts int        `json:"inactive_accounts"`
	ErrorAccounts    int        `json:"error_accounts"`
	TotalGlory       int64      `json:"total_glory"`
	TodayGlory       int64      `json:"today_glory"`
	LastSyncAt       *time.Time `json:"last_sync_at,omitempty"`
	RefreshedAt      time.Time  `json:"refreshed_at"`
}

// SyncReport summarises one reconciliation run.
type SyncReport struct {
	Local     int       `json:"local"`
	Remote    int       `json:"remote"`
	Imported  int       `json:"imported"`
	Updated   int       `json:"updated"`
	Unchanged int       `json:"unchanged"`
	SyncedAt  time.Time `json:"synced_at"`
}
