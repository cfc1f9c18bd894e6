// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// InviteRequest asks for a batch of clan invitations sent from the active
// accounts.
type InviteRequest struct {
	ClanRef string        `json:"clan_ref"`
	Count   int           `json:"count"`
	Delay   time.Duration `json:"-"`
}
