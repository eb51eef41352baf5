package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
	guestauthUseCase "github.com/logbarron/guestgate/internal/guestauth/usecase"
)

// RunIssueLink issues a magic link for a guest and prints the verification URL.
// The plain token is printed exactly once; the store only holds its keyed hash.
//
// Requirements: Database must be migrated and accessible.
func RunIssueLink(
	ctx context.Context,
	magicLinkUseCase guestauthUseCase.MagicLinkUseCase,
	logger *slog.Logger,
	w io.Writer,
	guestIDStr, email, format string,
) error {
	guestID, err := uuid.Parse(guestIDStr)
	if err != nil {
		return fmt.Errorf("invalid guest ID: %w", err)
	}

	logger.Info("issuing magic link", slog.String("guest_id", guestID.String()))

	output, err := magicLinkUseCase.Issue(ctx, &guestauthDomain.IssueMagicLinkInput{
		GuestID: guestID,
		Email:   email,
	})
	if err != nil {
		return fmt.Errorf("failed to issue magic link: %w", err)
	}

	if format == "json" {
		return outputIssueLinkJSON(w, output)
	}
	outputIssueLinkText(w, output)

	return nil
}

// outputIssueLinkText outputs the result in human-readable text format.
func outputIssueLinkText(w io.Writer, output *guestauthDomain.IssueMagicLinkOutput) {
	fmt.Fprintf(w, "Magic link issued (ID: %s)\n", output.LinkID)
	fmt.Fprintf(w, "Verify URL: %s\n", output.VerifyURL)
	fmt.Fprintf(w, "Expires at: %s\n", output.ExpiresAt.Format(time.RFC3339))
}

// outputIssueLinkJSON outputs the result in JSON format for machine consumption.
func outputIssueLinkJSON(w io.Writer, output *guestauthDomain.IssueMagicLinkOutput) error {
	result := map[string]interface{}{
		"link_id":    output.LinkID.String(),
		"verify_url": output.VerifyURL,
		"expires_at": output.ExpiresAt.Format(time.RFC3339),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(jsonBytes))
	return nil
}
