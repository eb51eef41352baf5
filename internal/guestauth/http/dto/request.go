// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/logbarron/guestgate/internal/validation"
)

// IssueMagicLinkRequest contains the parameters for minting a magic link.
type IssueMagicLinkRequest struct {
	GuestID string `json:"guest_id"`
	Email   string `json:"email"`
}

// Validate checks if the issue magic link request is valid.
func (r *IssueMagicLinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.GuestID,
			validation.Required,
			customValidation.UUIDString,
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
		),
	)
}
