package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/logbarron/guestgate/internal/crypto/domain"
	apperrors "github.com/logbarron/guestgate/internal/errors"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens secrets keepers for root-key unwrapping using gocloud.dev/secrets.
type KMSService interface {
	// OpenKeeper opens a secrets keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (Keeper, error)
}

// Keeper is the subset of *secrets.Keeper used by the root-key loader.
type Keeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets keeper for the given URI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// LoadRootKey resolves the process root key from deployment configuration.
//
// Two sources are supported, checked in order:
//  1. rawBase64: the root key material directly, base64-encoded (dev/test).
//  2. kmsURI + ciphertextBase64: the root key wrapped by an external KMS;
//     production deployments should prefer this so plaintext key material never
//     appears in the environment.
//
// Returns a configuration error when neither source is usable.
func LoadRootKey(
	ctx context.Context,
	kms KMSService,
	id, rawBase64, kmsURI, ciphertextBase64 string,
) (*cryptoDomain.RootKey, error) {
	if rawBase64 != "" {
		return cryptoDomain.RootKeyFromBase64(id, rawBase64)
	}

	if kmsURI == "" || strings.TrimSpace(ciphertextBase64) == "" {
		return nil, apperrors.Wrap(cryptoDomain.ErrRootKeyInvalid,
			"either ROOT_KEY or KMS_KEY_URI with ROOT_KEY_CIPHERTEXT must be set")
	}

	keeper, err := kms.OpenKeeper(ctx, kmsURI)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrRootKeyInvalid, err.Error())
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertextBase64))
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrRootKeyInvalid, "root key ciphertext is not valid base64")
	}

	raw, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrRootKeyInvalid, "failed to unwrap root key")
	}
	if len(raw) != cryptoDomain.RootKeySize {
		return nil, apperrors.Wrap(cryptoDomain.ErrRootKeyInvalid, "unwrapped root key must be 32 bytes")
	}

	return &cryptoDomain.RootKey{ID: id, Key: raw}, nil
}
