package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	cryptoDomain "github.com/logbarron/guestgate/internal/crypto/domain"
	cryptoService "github.com/logbarron/guestgate/internal/crypto/service"
)

// RunCreateRootKey generates a cryptographically secure 32-byte root key for
// record envelope encryption. Key material is zeroed from memory after encoding.
// If keyID is empty, generates a default ID in format "root-key-YYYY-MM-DD".
//
// With kmsKeyURI set, the key is wrapped by the KMS keeper before output and the
// plaintext never leaves the process:
//   - KMS_KEY_URI="<uri>"
//   - ROOT_KEY_CIPHERTEXT="<base64-encoded-kms-ciphertext>"
//
// Without kmsKeyURI, the plaintext key is printed base64-encoded as ROOT_KEY.
// Only use the plaintext form for local development.
func RunCreateRootKey(ctx context.Context, w io.Writer, keyID, kmsKeyURI string) error {
	// Generate default key ID if not provided
	if keyID == "" {
		keyID = fmt.Sprintf("root-key-%s", time.Now().Format("2006-01-02"))
	}

	// Generate a cryptographically secure 32-byte root key
	rootKey := make([]byte, cryptoDomain.RootKeySize)
	if _, err := rand.Read(rootKey); err != nil {
		return fmt.Errorf("failed to generate root key: %w", err)
	}
	defer func() {
		for i := range rootKey {
			rootKey[i] = 0
		}
	}()

	if kmsKeyURI == "" {
		fmt.Fprintln(w, "# Root Key Configuration (plaintext mode, local development only)")
		fmt.Fprintln(w, "# Copy these environment variables to your .env file")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "ROOT_KEY_ID=%q\n", keyID)
		fmt.Fprintf(w, "ROOT_KEY=%q\n", base64.StdEncoding.EncodeToString(rootKey))
		return nil
	}

	// Create KMS service and open keeper
	kmsService := cryptoService.NewKMSService()
	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeperInterface.Close(); closeErr != nil {
			fmt.Fprintf(w, "Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	// The loader only needs Decrypt, so the Keeper interface omits Encrypt
	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := keeper.Encrypt(ctx, rootKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt root key with KMS: %w", err)
	}

	fmt.Fprintln(w, "# Root Key Configuration (KMS mode)")
	fmt.Fprintln(w, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "ROOT_KEY_ID=%q\n", keyID)
	fmt.Fprintf(w, "KMS_KEY_URI=%q\n", kmsKeyURI)
	fmt.Fprintf(w, "ROOT_KEY_CIPHERTEXT=%q\n", base64.StdEncoding.EncodeToString(ciphertext))

	return nil
}
