// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the gloryctl command tree. Every command is a thin
// call of one daemon API route through [client.Client].
package cli
