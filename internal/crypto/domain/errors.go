package domain

import (
	apperrors "github.com/logbarron/guestgate/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so the
// error handling layer can map them to coarse external outcomes without leaking
// which cryptographic check failed.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a cryptographic key is not exactly 32 bytes.
	ErrInvalidKeySize = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid key size")

	// ErrIntegrity indicates a decryption or authentication step failed.
	//
	// Possible causes include a wrong root key, tampered ciphertext or IV, a
	// corrupted wrapped DEK, or a mismatched binding context. The cause is
	// deliberately not distinguished to avoid giving an attacker an oracle.
	ErrIntegrity = apperrors.Wrap(apperrors.ErrIntegrity, "record unreadable")

	// ErrRootKeyInvalid indicates the deployment-supplied root key material is
	// absent or unusable. Surfaced as a configuration failure, not a caller error.
	ErrRootKeyInvalid = apperrors.Wrap(apperrors.ErrConfiguration, "invalid root key")
)
