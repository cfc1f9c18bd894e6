// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/glory-keeper/internal/app"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/service"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

var kindStatusMap = map[service.ErrorKind]int{
	service.KindValidation:        http.StatusBadRequest,
	service.KindNotFound:          http.StatusNotFound,
	service.KindAlreadyActive:     http.StatusConflict,
	service.KindAlreadyInactive:   http.StatusConflict,
	service.KindAccountInError:    http.StatusConflict,
	service.KindNetwork:           http.StatusBadGateway,
	service.KindNoEligibleTargets: http.StatusUnprocessableEntity,
	service.KindInternal:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	if errors.Is(err, service.ErrShuttingDown) {
		return http.StatusServiceUnavailable
	}
	if status, ok := kindStatusMap[service.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError renders err as an [models.ErrorResponse]. Internal errors are
// logged with their full text and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	log := logger.FromRequest(r)

	kind := service.KindOf(err)
	status := statusFromError(err)
	message := err.Error()

	switch {
	case status == http.StatusServiceUnavailable:
		message = app.MsgServiceUnavailable
	case kind == service.KindInternal:
		message = app.MsgInternalServerError
	}

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Str("kind", string(kind)).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", fn).Str("kind", string(kind)).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Kind: string(kind), Message: message}, status)
}

// writeBadRequest renders a validation error that never reached the core.
func writeBadRequest(w http.ResponseWriter, r *http.Request, message string, err error, fn string) {
	log := logger.FromRequest(r)
	log.Err(err).Str("func", fn).Msg(message)

	utils.WriteJSON(w, models.ErrorResponse{Kind: string(service.KindValidation), Message: message}, http.StatusBadRequest)
}
