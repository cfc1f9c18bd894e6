// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/glory-keeper/internal/utils"
)

// reconcile runs a sync immediately, outside the scheduler cadence.
func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.Sync.Reconcile(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.reconcile")
		return
	}

	auditLog(r).
		Int("imported", report.Imported).
		Int("updated", report.Updated).
		Msg("manual sync finished")
	utils.WriteJSON(w, report, http.StatusOK)
}
