package domain

import "time"

// RateLimitBucket is a fixed-window request counter keyed by an arbitrary
// caller-chosen string, e.g. "verify:ip:203.0.113.9" or "verify:token:<hash>".
// Buckets are ephemeral; no durability is required beyond the window length,
// so a process restart resetting limits is an accepted limitation.
type RateLimitBucket struct {
	Key         string
	WindowStart time.Time
	Count       int64
}
