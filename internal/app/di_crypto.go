package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/logbarron/guestgate/internal/crypto/domain"
	cryptoService "github.com/logbarron/guestgate/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// RootKey returns the process root key resolved from configuration,
// either directly or through an external KMS keeper.
func (c *Container) RootKey() (*cryptoDomain.RootKey, error) {
	var err error
	c.rootKeyInit.Do(func() {
		c.rootKey, err = cryptoService.LoadRootKey(
			context.Background(),
			c.KMSService(),
			c.config.RootKeyID,
			c.config.RootKey,
			c.config.KMSKeyURI,
			c.config.RootKeyCiphertext,
		)
		if err != nil {
			c.initErrors["rootKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rootKey"]; exists {
		return nil, storedErr
	}
	return c.rootKey, nil
}

// EnvelopeService returns the record-level envelope encryption service.
func (c *Container) EnvelopeService() (cryptoService.Envelope, error) {
	var err error
	c.envelopeServiceInit.Do(func() {
		c.envelopeService, err = c.initEnvelopeService()
		if err != nil {
			c.initErrors["envelopeService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeService"]; exists {
		return nil, storedErr
	}
	return c.envelopeService, nil
}

// initEnvelopeService creates the envelope service with the configured algorithm.
func (c *Container) initEnvelopeService() (cryptoService.Envelope, error) {
	rootKey, err := c.RootKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get root key for envelope service: %w", err)
	}

	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.RecordAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid record algorithm: %w", err)
	}

	return cryptoService.NewEnvelopeService(
		rootKey,
		algorithm,
		cryptoService.NewAEADManager(),
		cryptoService.NewAESKeyWrap(),
	)
}
