// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

func (h *Handler) startAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.Farming.StartAll(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.startAll")
		return
	}

	if result.Started == nil {
		result.Started = []string{}
	}
	if result.Failed == nil {
		result.Failed = []models.FarmingFailure{}
	}

	auditLog(r).
		Int("started", len(result.Started)).
		Int("failed", len(result.Failed)).
		Msg("start-all finished")
	utils.WriteJSON(w, result, http.StatusOK)
}
