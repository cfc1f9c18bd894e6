// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the glory-keeper daemon: the HTTP API, the periodic
// scheduler and the ordered graceful shutdown of the farming workers and the
// notification dispatcher.
package server
