// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Amir Ossanloo

package http

import "errors"

// Sentinel errors raised inside the middleware pipeline. Callers can match
// against them with [errors.Is]; the error handler maps them to HTTP
// statuses through errorStatusMap.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when a
	// request to a secured path carries no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrTokenRejected is returned when a strategy refuses the bearer token.
	ErrTokenRejected = errors.New("token rejected")

	// ErrUnsupportedAuthProvider is returned at assembly time for a strategy
	// whose provider has no registered factory.
	ErrUnsupportedAuthProvider = errors.New("unsupported auth provider")

	// ErrMissingSecret is returned at assembly time for a jwt strategy
	// without a secret.
	ErrMissingSecret = errors.New("jwt strategy requires a secret")

	// ErrUnsupportedAlgorithm is returned at assembly time for a jwt strategy
	// listing a signing method that cannot be verified with a shared secret.
	ErrUnsupportedAlgorithm = errors.New("jwt strategy supports HMAC algorithms only")

	ErrInvalidBodyLimit = errors.New("invalid body size limit")
	ErrInvalidSchema    = errors.New("invalid request schema")

	ErrBodyTooLarge      = errors.New("request entity too large")
	ErrTooManyParameters = errors.New("too many parameters")
	ErrMalformedBody     = errors.New("malformed request body")
)
