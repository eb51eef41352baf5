// Package domain defines the core cryptographic domain models for envelope encryption.
//
// It implements a two-tier key hierarchy: Root Key (KEK) → DEK → Record. A fresh
// DEK is generated for every encryption call and wrapped under the root key, so
// compromising any single DEK exposes exactly one record, and the root key can be
// rotated without touching record ciphertexts wrapped under older root keys.
package domain

import (
	"encoding/base64"
	"strings"

	apperrors "github.com/logbarron/guestgate/internal/errors"
)

// RootKeySize is the required root key length in bytes (256 bits).
const RootKeySize = 32

// RootKey is the deployment-supplied key-encryption key. It is loaded once per
// process, never persisted, and used only to wrap and unwrap per-record DEKs.
type RootKey struct {
	ID  string
	Key []byte
}

// RootKeyFromBase64 decodes deployment-provided root key material.
// Returns ErrRootKeyInvalid if the value is missing, malformed, or not 32 bytes.
func RootKeyFromBase64(id, encoded string) (*RootKey, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Wrap(ErrRootKeyInvalid, "root key id is required")
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, apperrors.Wrap(ErrRootKeyInvalid, "root key is not valid base64")
	}
	if len(raw) != RootKeySize {
		return nil, apperrors.Wrap(ErrRootKeyInvalid, "root key must decode to 32 bytes")
	}

	return &RootKey{ID: id, Key: raw}, nil
}

// Close zeroes the key material. The RootKey must not be used afterwards.
func (r *RootKey) Close() {
	Zero(r.Key)
}
