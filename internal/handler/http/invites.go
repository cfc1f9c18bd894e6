// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/glory-keeper/internal/app"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

func (h *Handler) dispatchInvites(w http.ResponseWriter, r *http.Request) {
	var body models.InviteBody
	if err := utils.DecodeJSON(r, &body); err != nil {
		writeBadRequest(w, r, app.MsgInvalidJSON, err, "*Handler.dispatchInvites")
		return
	}

	result, err := h.services.Invites.DispatchInvites(r.Context(), body.Request())
	if err != nil {
		writeError(w, r, err, "*Handler.dispatchInvites")
		return
	}

	auditLog(r).
		Str("batch_id", result.ID).
		Int("successes", result.Successes).
		Int("targets", len(result.Outcomes)).
		Msg("invite batch finished")
	utils.WriteJSON(w, result, http.StatusOK)
}
