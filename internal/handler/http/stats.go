// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	activeCount, err := h.services.Stats.ActiveCount(ctx)
	if err != nil {
		writeError(w, r, err, "*Handler.getStats")
		return
	}

	todayGlory, err := h.services.Stats.TodayGlory(ctx)
	if err != nil {
		writeError(w, r, err, "*Handler.getStats")
		return
	}

	utils.WriteJSON(w, models.StatsResponse{
		ActiveCount:   activeCount,
		TodayGlory:    todayGlory,
		ActiveWorkers: h.services.Farming.ActiveWorkers(),
		Snapshot:      h.services.Stats.Snapshot(),
	}, http.StatusOK)
}
