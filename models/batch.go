// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BatchOutcome is the result of one operation call inside a batch.
type BatchOutcome struct {
	AccountID   string `json:"account_id"`
	ExternalUID string `json:"uid"`
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
}

// BatchResult is the ordered list of outcomes of a dispatched batch.
type BatchResult struct {
	ID         string         `json:"id"`
	Requested  int            `json:"requested"`
	Outcomes   []BatchOutcome `json:"outcomes"`
	Successes  int            `json:"successes"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// SuccessRatio returns successes divided by the number of selected targets.
// The boolean is false when no target was selected, which is a different
// outcome from a ratio of zero.
func (r BatchResult) SuccessRatio() (float64, bool) {
	if len(r.Outcomes) == 0 {
		return 0, false
	}
	return float64(r.Successes) / float64(len(r.Outcomes)), true
}

// FarmingFailure records why one account could not be started during a
// start-all run.
type FarmingFailure struct {
	AccountID string `json:"account_id"`
	Err       error  `json:"-"`
	Message   string `json:"message"`
}

// StartAllResult lists the accounts a start-all run started and the ones
// that failed.
type StartAllResult struct {
	Started []string         `json:"started"`
	Failed  []FarmingFailure `json:"failed"`
}
