package service

import (
	"crypto/aes"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
)

// defaultIV is the RFC 3394 initial value used as the wrap integrity check.
var defaultIV = [8]byte{0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6}

// AESKeyWrap implements RFC 3394 AES Key Wrap for protecting data-encryption keys
// under the root key.
//
// Unlike the randomized AEAD used for record payloads, key wrap is deterministic:
// wrapping the same DEK under the same root key always yields the same bytes.
// That is acceptable here because every DEK is freshly random and used exactly
// once, so no two wrap calls ever see the same input. Determinism keeps the
// envelope small (no second nonce to store) while the built-in 64-bit integrity
// check still detects corruption and wrong-key unwraps.
type AESKeyWrap struct{}

// NewAESKeyWrap creates a new AESKeyWrap instance.
func NewAESKeyWrap() *AESKeyWrap {
	return &AESKeyWrap{}
}

// Wrap wraps the DEK under the KEK per RFC 3394.
//
// The DEK must be a multiple of 8 bytes and at least 16 bytes; the KEK must be
// a valid AES key (32 bytes for AES-256). The output is 8 bytes longer than the
// input.
func (w *AESKeyWrap) Wrap(kek, dek []byte) ([]byte, error) {
	if len(dek) < 16 || len(dek)%8 != 0 {
		return nil, errors.New("key to wrap must be a multiple of 8 bytes, minimum 16")
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("failed to create wrapping cipher: %w", err)
	}

	n := len(dek) / 8
	a := defaultIV
	r := make([]byte, len(dek))
	copy(r, dek)

	var b [16]byte
	for j := 0; j <= 5; j++ {
		for i := 1; i <= n; i++ {
			copy(b[:8], a[:])
			copy(b[8:], r[(i-1)*8:i*8])
			block.Encrypt(b[:], b[:])

			t := uint64(n*j + i)
			binary.BigEndian.PutUint64(a[:], binary.BigEndian.Uint64(b[:8])^t)
			copy(r[(i-1)*8:i*8], b[8:])
		}
	}

	out := make([]byte, 8+len(dek))
	copy(out[:8], a[:])
	copy(out[8:], r)
	return out, nil
}

// Unwrap reverses Wrap, returning the original DEK.
//
// Returns an error if the integrity check fails, which covers a wrong KEK as
// well as any corruption of the wrapped blob. Callers must treat the error as
// opaque.
func (w *AESKeyWrap) Unwrap(kek, wrapped []byte) ([]byte, error) {
	if len(wrapped) < 24 || len(wrapped)%8 != 0 {
		return nil, errors.New("wrapped key has invalid length")
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("failed to create wrapping cipher: %w", err)
	}

	n := len(wrapped)/8 - 1
	var a [8]byte
	copy(a[:], wrapped[:8])
	r := make([]byte, len(wrapped)-8)
	copy(r, wrapped[8:])

	var b [16]byte
	for j := 5; j >= 0; j-- {
		for i := n; i >= 1; i-- {
			t := uint64(n*j + i)
			binary.BigEndian.PutUint64(b[:8], binary.BigEndian.Uint64(a[:])^t)
			copy(b[8:], r[(i-1)*8:i*8])
			block.Decrypt(b[:], b[:])

			copy(a[:], b[:8])
			copy(r[(i-1)*8:i*8], b[8:])
		}
	}

	if subtle.ConstantTimeCompare(a[:], defaultIV[:]) != 1 {
		return nil, errors.New("key unwrap integrity check failed")
	}

	return r, nil
}
