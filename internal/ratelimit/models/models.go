// Package models holds the rate limiting value types shared by stores,
// limiters and middleware.
package models

import "time"

// Policy allows Limit requests in any sliding Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// RateLimitResult is the verdict of one check. RetryAfter (seconds) is only
// set on a denial.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int
}
