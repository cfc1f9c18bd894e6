// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AccountStatus is the farming state of an account. It is written only by
// the farming orchestrator.
type AccountStatus string

const (
	// StatusInactive means no worker is running for the account.
	StatusInactive AccountStatus = "inactive"
	// StatusActive means exactly one worker is farming for the account.
	StatusActive AccountStatus = "active"
	// StatusError means the last worker failed; a reset is required before
	// the account can be started again.
	StatusError AccountStatus = "error"
)

// AccountType is the login provider the external account belongs to.
type AccountType string

const (
	AccountTypeGuest    AccountType = "guest"
	AccountTypeFacebook AccountType = "facebook"
	AccountTypeGoogle   AccountType = "google"
)

// Account is a managed external account whose farming task can be started
// and stopped.
//
// ID, ExternalUID and Credential never change after creation. Credential is
// excluded from JSON so it never leaves the process through the API.
type Account struct {
	ID           string        `json:"id" db:"id"`
	ExternalUID  string        `json:"uid" db:"external_uid"`
	Credential   string        `json:"-" db:"credential"`
	ClanRef      string        `json:"clan_ref,omitempty" db:"clan_ref"`
	Type         AccountType   `json:"type" db:"type"`
	Status       AccountStatus `json:"status" db:"status"`
	GloryTotal   int64         `json:"glory_total" db:"glory_total"`
	GloryToday   int64         `json:"glory_today" db:"glory_today"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	LastActiveAt *time.Time    `json:"last_active_at,omitempty" db:"last_active_at"`
}

// IsActive reports whether the account is currently farming.
func (a Account) IsActive() bool {
	return a.Status == StatusActive
}

// ActiveOn reports whether the account was last activated on the same local
// calendar day as t.
func (a Account) ActiveOn(t time.Time) bool {
	if a.LastActiveAt == nil {
		return false
	}
	y1, m1, d1 := a.LastActiveAt.In(t.Location()).Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// NewAccount holds the fields accepted when an account record is created.
//
// ID is normally left empty and generated by the store. Reconciliation sets
// it to keep the identity of accounts imported from the remote snapshot.
type NewAccount struct {
	ID           string      `json:"id,omitempty"`
	ExternalUID  string      `json:"uid"`
	Credential   string      `json:"token"`
	ClanRef      string      `json:"clan_ref,omitempty"`
	Type         AccountType `json:"type,omitempty"`
	GloryTotal   int64       `json:"-"`
	GloryToday   int64       `json:"-"`
	CreatedAt    time.Time   `json:"-"`
	LastActiveAt *time.Time  `json:"-"`
}

// AccountUpdate is a partial update of an account record. Nil pointers and
// zero deltas leave the corresponding column untouched.
//
// Glory columns only move through increments so that concurrent writers never
// lose each other's contributions.
type AccountUpdate struct {
	Status          *AccountStatus
	ClanRef         *string
	LastActiveAt    *time.Time
	AddGloryTotal   int64
	AddGloryToday   int64
	ResetGloryToday bool
}

// IsEmpty reports whether applying u would change nothing.
func (u AccountUpdate) IsEmpty() bool {
	return u.Status == nil &&
		u.ClanRef == nil &&
		u.LastActiveAt == nil &&
		u.AddGloryTotal == 0 &&
		u.AddGloryToday == 0 &&
		!u.ResetGloryToday
}

// Apply returns a copy of a with u applied. Stores that keep records in
// memory use it; SQL stores express the same rules in the UPDATE statement.
func (u AccountUpdate) Apply(a Account) Account {
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.ClanRef != nil {
		a.ClanRef = *u.ClanRef
	}
	if u.LastActiveAt != nil {
		t := *u.LastActiveAt
		a.LastActiveAt = &t
	}
	if u.ResetGloryToday {
		a.GloryToday = 0
	}
	if u.AddGloryTotal > 0 {
		a.GloryTotal += u.AddGloryTotal
	}
	if u.AddGloryToday > 0 {
		a.GloryToday += u.AddGloryToday
	}
	return a
}

// StatusPtr is a helper for building an [AccountUpdate] inline.
func StatusPtr(s AccountStatus) *AccountStatus {
	return &s
}
