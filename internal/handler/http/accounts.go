// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/glory-keeper/internal/app"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.services.Accounts.List(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.listAccounts")
		return
	}

	if accounts == nil {
		accounts = []models.Account{}
	}
	utils.WriteJSON(w, accounts, http.StatusOK)
}

func (h *Handler) addAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount models.NewAccount
	if err := utils.DecodeJSON(r, &newAccount); err != nil {
		writeBadRequest(w, r, app.MsgInvalidJSON, err, "*Handler.addAccount")
		return
	}

	account, err := h.services.Accounts.Add(r.Context(), newAccount)
	if err != nil {
		writeError(w, r, err, "*Handler.addAccount")
		return
	}

	auditLog(r).Str("account_id", account.ID).Msg("account added")
	utils.WriteJSON(w, account, http.StatusCreated)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	h.withAccountID(w, r, "*Handler.getAccount", h.services.Accounts.Get)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, r, app.MsgNoAccountID, nil, "*Handler.updateAccount")
		return
	}

	var patch models.AccountPatch
	if err := utils.DecodeJSON(r, &patch); err != nil {
		writeBadRequest(w, r, app.MsgInvalidJSON, err, "*Handler.updateAccount")
		return
	}
	if patch.ClanRef == nil {
		writeBadRequest(w, r, app.MsgNoClanRef, nil, "*Handler.updateAccount")
		return
	}

	account, err := h.services.Accounts.Update(r.Context(), id, *patch.ClanRef)
	if err != nil {
		writeError(w, r, err, "*Handler.updateAccount")
		return
	}

	auditLog(r).Str("account_id", account.ID).Str("clan_ref", account.ClanRef).Msg("account updated")
	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) startAccount(w http.ResponseWriter, r *http.Request) {
	h.withAccountID(w, r, "*Handler.startAccount", h.services.Farming.Start)
}

func (h *Handler) stopAccount(w http.ResponseWriter, r *http.Request) {
	h.withAccountID(w, r, "*Handler.stopAccount", h.services.Farming.Stop)
}

func (h *Handler) resetAccount(w http.ResponseWriter, r *http.Request) {
	h.withAccountID(w, r, "*Handler.resetAccount", h.services.Farming.Reset)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, r, app.MsgNoAccountID, nil, "*Handler.deleteAccount")
		return
	}

	if err := h.services.Farming.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "*Handler.deleteAccount")
		return
	}

	auditLog(r).Str("account_id", id).Msg("account deleted")

	w.WriteHeader(http.StatusNoContent)
}

// withAccountID runs a single-account operation on the {id} path parameter
// and renders the resulting account.
func (h *Handler) withAccountID(
	w http.ResponseWriter,
	r *http.Request,
	fn string,
	op func(ctx context.Context, id string) (models.Account, error),
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, r, app.MsgNoAccountID, nil, fn)
		return
	}

	account, err := op(r.Context(), id)
	if err != nil {
		writeError(w, r, err, fn)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

// auditLog starts an info entry carrying the token subject of r, when the
// request was authenticated.
func auditLog(r *http.Request) *zerolog.Event {
	e := logger.FromRequest(r).Info()
	if subject, ok := utils.GetSubjectFromContext(r.Context()); ok {
		e = e.Str("subject", subject)
	}
	return e
}
