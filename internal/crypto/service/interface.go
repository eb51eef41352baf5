// Package service provides cryptographic services for envelope encryption of
// guest records. Implements AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305) for
// record payloads and deterministic AES Key Wrap for per-record DEKs.
package service

import (
	"encoding/json"

	cryptoDomain "github.com/logbarron/guestgate/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyWrapper wraps and unwraps data-encryption keys under the root key.
// The wrap is deterministic: the DEK itself is single-use random so no
// per-wrap randomness is required, and the envelope carries no second nonce.
type KeyWrapper interface {
	Wrap(kek, dek []byte) ([]byte, error)
	Unwrap(kek, wrapped []byte) ([]byte, error)
}

// Envelope is the record-level encryption contract consumed by business logic.
// Implementations must collapse every decryption failure into a single opaque
// integrity error regardless of which check tripped.
type Envelope interface {
	Encrypt(value json.RawMessage, table, recordID, purpose string) (cryptoDomain.EncryptedRecord, error)
	Decrypt(record cryptoDomain.EncryptedRecord, table, recordID, purpose string) (json.RawMessage, error)
}
