// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// InviteBody is the JSON body of POST /api/batch/invites. Zero Count and
// DelayMS mean the server defaults.
type InviteBody struct {
	ClanRef string `json:"clan_ref"`
	Count   int    `json:"count,omitempty"`
	DelayMS int64  `json:"delay_ms,omitempty"`
}

// Request converts the body into an [InviteRequest].
func (b InviteBody) Request() InviteRequest {
	return InviteRequest{
		ClanRef: b.ClanRef,
		Count:   b.Count,
		Delay:   time.Duration(b.DelayMS) * time.Millisecond,
	}
}

// AccountPatch is the JSON body of PATCH /api/accounts/{id}. ClanRef must be
// present; an empty string clears the clan reference.
type AccountPatch struct {
	ClanRef *string `json:"clan_ref"`
}
