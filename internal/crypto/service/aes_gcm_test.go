package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAESGCM(t *testing.T) {
	t.Run("valid 256-bit key", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewAESGCM(key)
		assert.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("invalid key size", func(t *testing.T) {
		cipher, err := NewAESGCM(make([]byte, 16))
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})
}

func TestAESGCMCipher_RoundTrip(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)

	t.Run("round trip with AAD", func(t *testing.T) {
		plaintext := []byte(`{"name":"Ada Lovelace","dietary":"vegetarian"}`)
		aad := []byte("guests:abc123:profile")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
		require.NoError(t, err)
		assert.Len(t, nonce, 12)
		assert.NotEqual(t, plaintext, ciphertext)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("round trip without AAD", func(t *testing.T) {
		plaintext := []byte("plus one")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("empty plaintext", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte{}, []byte("aad"))
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, []byte("aad"))
		require.NoError(t, err)
		assert.Empty(t, decrypted)
	})
}

func TestAESGCMCipher_AuthenticationFailures(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)

	plaintext := []byte("rsvp: attending")
	aad := []byte("guests:abc123:rsvp")
	ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
	require.NoError(t, err)

	t.Run("wrong AAD", func(t *testing.T) {
		_, err := cipher.Decrypt(ciphertext, nonce, []byte("guests:abc123:profile"))
		assert.Error(t, err)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		bad := make([]byte, len(ciphertext))
		copy(bad, ciphertext)
		bad[0] ^= 0xFF

		_, err := cipher.Decrypt(bad, nonce, aad)
		assert.Error(t, err)
	})

	t.Run("wrong nonce", func(t *testing.T) {
		other := make([]byte, 12)
		_, err := rand.Read(other)
		require.NoError(t, err)

		_, err = cipher.Decrypt(ciphertext, other, aad)
		assert.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		otherKey := make([]byte, 32)
		_, err := rand.Read(otherKey)
		require.NoError(t, err)

		otherCipher, err := NewAESGCM(otherKey)
		require.NoError(t, err)

		_, err = otherCipher.Decrypt(ciphertext, nonce, aad)
		assert.Error(t, err)
	})
}

func TestAESGCMCipher_NonceUniqueness(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)

	seen := make(map[string]bool)
	zero := make([]byte, 12)
	for i := 0; i < 64; i++ {
		_, nonce, err := cipher.Encrypt([]byte("same plaintext"), nil)
		require.NoError(t, err)
		assert.NotEqual(t, zero, nonce, "nonce must never be all zero")
		assert.False(t, seen[string(nonce)], "nonce reuse detected")
		seen[string(nonce)] = true
	}
}
