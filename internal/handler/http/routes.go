// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		if h.tokenSignKey != "" {
			r.Use(h.auth)
		}

		// single-account calls are bounded; batch-like calls run as long as
		// their pacing requires
		r.Group(func(r chi.Router) {
			if h.requestTimeout > 0 {
				r.Use(middleware.Timeout(h.requestTimeout))
			}
			r.Get("/api/accounts", h.listAccounts)
			r.Post("/api/accounts", h.addAccount)
			r.Get("/api/accounts/{id}", h.getAccount)
			r.Patch("/api/accounts/{id}", h.updateAccount)
			r.Delete("/api/accounts/{id}", h.deleteAccount)
			r.Post("/api/accounts/{id}/start", h.startAccount)
			r.Post("/api/accounts/{id}/stop", h.stopAccount)
			r.Post("/api/accounts/{id}/reset", h.resetAccount)
			r.Get("/api/stats", h.getStats)
		})

		r.Post("/api/farming/start-all", h.startAll)
		r.Post("/api/batch/invites", h.dispatchInvites)
		r.Post("/api/sync", h.reconcile)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
