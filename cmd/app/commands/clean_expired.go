package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	guestauthUseCase "github.com/logbarron/guestgate/internal/guestauth/usecase"
)

// RunCleanExpired deletes expired magic links and sessions, rate limit buckets
// idle for more than staleHours, and audit events older than retentionDays.
// Supports both text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpired(
	ctx context.Context,
	cleanupUseCase guestauthUseCase.CleanupUseCase,
	logger *slog.Logger,
	w io.Writer,
	staleHours, retentionDays int,
	format string,
) error {
	if staleHours <= 0 {
		return fmt.Errorf("stale-hours must be a positive number, got: %d", staleHours)
	}
	if retentionDays <= 0 {
		return fmt.Errorf("retention-days must be a positive number, got: %d", retentionDays)
	}

	staleWindow := time.Duration(staleHours) * time.Hour
	retention := time.Duration(retentionDays) * 24 * time.Hour

	logger.Info("cleaning expired rows",
		slog.Int("stale_hours", staleHours),
		slog.Int("retention_days", retentionDays),
	)

	result, err := cleanupUseCase.Run(ctx, staleWindow, retention)
	if err != nil {
		return fmt.Errorf("failed to clean expired rows: %w", err)
	}

	if format == "json" {
		if err := outputCleanExpiredJSON(w, result); err != nil {
			return err
		}
	} else {
		outputCleanExpiredText(w, result)
	}

	logger.Info("cleanup completed",
		slog.Int64("magic_links", result.MagicLinks),
		slog.Int64("sessions", result.Sessions),
		slog.Int64("rate_limit_buckets", result.RateLimitBuckets),
		slog.Int64("audit_events", result.AuditEvents),
	)

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(w io.Writer, result *guestauthUseCase.CleanupResult) {
	fmt.Fprintf(w, "Deleted %d expired magic link(s)\n", result.MagicLinks)
	fmt.Fprintf(w, "Deleted %d expired session(s)\n", result.Sessions)
	fmt.Fprintf(w, "Deleted %d stale rate limit bucket(s)\n", result.RateLimitBuckets)
	fmt.Fprintf(w, "Deleted %d old audit event(s)\n", result.AuditEvents)
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(w io.Writer, result *guestauthUseCase.CleanupResult) error {
	out := map[string]interface{}{
		"magic_links":        result.MagicLinks,
		"sessions":           result.Sessions,
		"rate_limit_buckets": result.RateLimitBuckets,
		"audit_events":       result.AuditEvents,
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(jsonBytes))
	return nil
}
