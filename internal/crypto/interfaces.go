// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// CredentialSealer protects account credentials at rest. The store seals a
// credential before writing it and opens it after reading, so the rest of the
// application only ever sees the plaintext value.
type CredentialSealer interface {
	// Seal encrypts plaintext and returns a printable token.
	Seal(plaintext string) (string, error)

	// Open reverses Seal. Values that were never sealed are returned as is,
	// which lets an existing database be switched to sealing in place.
	Open(sealed string) (string, error)
}
