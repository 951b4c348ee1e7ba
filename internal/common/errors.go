// Package common defines shared constants and sentinel errors used across
// the Signal Registry server and tooling. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorStoreUnavailable = errors.New("store unavailable")
	ErrorNotFound         = errors.New("not found")

	// Auth errors. Deliberately does not say whether the email or the
	// password was wrong.
	ErrorUnauthorized = errors.New("unauthorized")

	// Signal validation errors.
	ErrorUnsupportedType    = errors.New("unsupported signal type")
	ErrorDataLengthExceeded = errors.New("data length exceeded")
	ErrorInconsistentData   = errors.New("inconsistent data")
	ErrorNoData             = errors.New("no data")

	// Generic internal failure exposed without detail.
	ErrorInternal = errors.New("internal error")
)
