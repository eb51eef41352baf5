package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// RunCreateHashSecret generates a random secret for the keyed hashing of guest
// emails and magic link tokens. The output is base64 so it survives env files
// unmangled; the service treats the configured string as raw key material.
//
// Rotating the secret invalidates all outstanding magic links and sessions,
// since stored hashes can no longer be matched.
func RunCreateHashSecret(w io.Writer) error {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate hash secret: %w", err)
	}

	fmt.Fprintln(w, "# Hash Secret Configuration")
	fmt.Fprintln(w, "# Copy this environment variable to your .env file or secrets manager")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "HASH_SECRET=%q\n", base64.StdEncoding.EncodeToString(secret))

	return nil
}
