package service

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/logbarron/guestgate/internal/crypto/domain"
)

// EnvelopeService implements record-level envelope encryption.
//
// Every Encrypt call generates a fresh 256-bit DEK and a fresh 96-bit IV, seals
// the JSON payload under the DEK with the binding context as AAD, wraps the DEK
// under the process root key, and discards the plaintext DEK. Decrypt unwraps
// the DEK inside the call and zeroes it before returning; unwrapped DEKs are
// never exported to callers.
//
// The per-call DEK bounds the blast radius of any single key compromise and lets
// the root key rotate without re-encrypting stored records, at the cost of one
// extra unwrap per decrypt.
type EnvelopeService struct {
	rootKey     *cryptoDomain.RootKey
	algorithm   cryptoDomain.Algorithm
	aeadManager AEADManager
	keyWrapper  KeyWrapper
}

// NewEnvelopeService creates an EnvelopeService sealing records with the given
// algorithm under the supplied root key.
func NewEnvelopeService(
	rootKey *cryptoDomain.RootKey,
	algorithm cryptoDomain.Algorithm,
	aeadManager AEADManager,
	keyWrapper KeyWrapper,
) (*EnvelopeService, error) {
	if rootKey == nil || len(rootKey.Key) != cryptoDomain.RootKeySize {
		return nil, cryptoDomain.ErrRootKeyInvalid
	}
	if _, err := cryptoDomain.ParseAlgorithm(string(algorithm)); err != nil {
		return nil, err
	}

	return &EnvelopeService{
		rootKey:     rootKey,
		algorithm:   algorithm,
		aeadManager: aeadManager,
		keyWrapper:  keyWrapper,
	}, nil
}

// Encrypt seals a JSON value into an EncryptedRecord bound to the
// (table, recordID, purpose) context.
//
// The context string is authenticated exactly as passed; no trimming or case
// folding is applied. The caller is responsible for the canonical triple.
func (e *EnvelopeService) Encrypt(
	value json.RawMessage,
	table, recordID, purpose string,
) (cryptoDomain.EncryptedRecord, error) {
	binding := cryptoDomain.BindingContext{Table: table, RecordID: recordID, Purpose: purpose}

	// Fresh single-use DEK per record
	dek := make([]byte, 32)
	if _, err := rand.Read(dek); err != nil {
		return cryptoDomain.EncryptedRecord{}, fmt.Errorf("failed to generate DEK: %w", err)
	}
	defer cryptoDomain.Zero(dek)

	aead, err := e.aeadManager.CreateCipher(dek, e.algorithm)
	if err != nil {
		return cryptoDomain.EncryptedRecord{}, err
	}

	ciphertext, iv, err := aead.Encrypt(value, binding.AAD())
	if err != nil {
		return cryptoDomain.EncryptedRecord{}, fmt.Errorf("failed to encrypt record: %w", err)
	}

	wrapped, err := e.keyWrapper.Wrap(e.rootKey.Key, dek)
	if err != nil {
		return cryptoDomain.EncryptedRecord{}, fmt.Errorf("failed to wrap DEK: %w", err)
	}

	return cryptoDomain.EncryptedRecord{
		Ciphertext: ciphertext,
		IV:         iv,
		WrappedDek: wrapped,
		AADHint:    binding.String(),
	}, nil
}

// Decrypt opens an EncryptedRecord previously sealed for the same
// (table, recordID, purpose) context and returns the original JSON value.
//
// Any failure (wrong root key, tampered ciphertext or IV, corrupted wrapped DEK,
// mismatched context) returns cryptoDomain.ErrIntegrity with no further detail.
func (e *EnvelopeService) Decrypt(
	record cryptoDomain.EncryptedRecord,
	table, recordID, purpose string,
) (json.RawMessage, error) {
	binding := cryptoDomain.BindingContext{Table: table, RecordID: recordID, Purpose: purpose}

	dek, err := e.keyWrapper.Unwrap(e.rootKey.Key, record.WrappedDek)
	if err != nil {
		return nil, cryptoDomain.ErrIntegrity
	}
	defer cryptoDomain.Zero(dek)

	aead, err := e.aeadManager.CreateCipher(dek, e.algorithm)
	if err != nil {
		return nil, cryptoDomain.ErrIntegrity
	}

	plaintext, err := aead.Decrypt(record.Ciphertext, record.IV, binding.AAD())
	if err != nil {
		return nil, cryptoDomain.ErrIntegrity
	}

	return plaintext, nil
}
