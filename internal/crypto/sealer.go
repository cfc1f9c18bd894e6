// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// sealedPrefix marks values produced by [aesSealer.Seal].
const sealedPrefix = "sealed:v1:"

// keySalt domain-separates the credential key from any other key derived
// from the same passphrase. The derived key must be stable across restarts.
var keySalt = []byte("glory-keeper/credential-key/v1")

// ErrMalformedSealed is returned by Open for a value carrying the sealed
// prefix that cannot be decrypted.
var ErrMalformedSealed = errors.New("malformed sealed credential")

type aesSealer struct {
	gcm cipher.AEAD
}

// argon2id parameters for the one-time key derivation at startup.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// NewCredentialSealer returns a sealer keyed by passphrase. The AES-256 key is
// derived once with Argon2id. An empty passphrase yields a sealer that stores
// credentials unchanged.
func NewCredentialSealer(passphrase string) (CredentialSealer, error) {
	if passphrase == "" {
		return plainSealer{}, nil
	}

	key := argon2.IDKey([]byte(passphrase), keySalt, argonTime, argonMemory, argonThreads, argonKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &aesSealer{gcm: gcm}, nil
}

// Seal encrypts plaintext with AES-256-GCM under a fresh random nonce and
// returns sealedPrefix + base64(nonce ‖ ciphertext).
func (s *aesSealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := s.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

func (s *aesSealer) Open(sealed string) (string, error) {
	encoded, ok := strings.CutPrefix(sealed, sealedPrefix)
	if !ok {
		return sealed, nil
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %w", ErrMalformedSealed, err)
	}

	nonceSize := s.gcm.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrMalformedSealed)
	}

	plaintext, err := s.gcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedSealed, err)
	}

	return string(plaintext), nil
}

type plainSealer struct{}

func (plainSealer) Seal(plaintext string) (string, error) { return plaintext, nil }

func (plainSealer) Open(sealed string) (string, error) {
	if strings.HasPrefix(sealed, sealedPrefix) {
		return "", fmt.Errorf("%w: no credential key configured", ErrMalformedSealed)
	}
	return sealed, nil
}
