// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog implements the content core: post lifecycle with stable
// slug assignment, the comment thread with dual-authority moderation, and
// idempotent per-session view accounting. Handlers translate the error
// taxonomy here into HTTP status codes; no operation is retried.
package blog

import "errors"

var (
	// ErrNotFound reports that a post or comment does not resolve.
	// It is deliberately distinct from ErrPermissionDenied: existence is
	// not masked from callers who lack permission.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied reports an authorization failure. The operation
	// is rejected with no state change.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError reports malformed input, surfaced to the caller for
// user-facing correction.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
