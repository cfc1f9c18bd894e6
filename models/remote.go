// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ProbeResult is the answer of the remote service to a farming status probe.
type ProbeResult struct {
	// GloryDelta is the glory earned since the previous probe. Negative
	// values are treated as zero.
	GloryDelta int64 `json:"glory_delta"`
	// Alive is false when the remote session is gone and farming cannot
	// continue.
	Alive bool `json:"alive"`
}

// InviteResult is the answer of the remote service to a clan invitation.
type InviteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
