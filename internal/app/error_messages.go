// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Amir Ossanloo

// Package app contains the message strings shared by the HTTP pipeline.
//
// All Msg* constants are human-readable messages written into HTTP response
// bodies. Keeping them in one place ensures consistent wording throughout the
// service.
package app

const (
	// MsgUnauthorized is returned for every authentication failure, whatever
	// the underlying cause.
	MsgUnauthorized = "Unauthorized request"

	// MsgUnexpectedError replaces the message of untyped errors in
	// production.
	MsgUnexpectedError = "An unexpected error occurred"

	// MsgRequestValidationFailed is the message of request schema failures.
	MsgRequestValidationFailed = "Request validation failed"

	// MsgRequestPartUnvalidated is returned when a request part cannot be
	// checked against its schema at all.
	MsgRequestPartUnvalidated = "Request %s could not be validated"

	// MsgNotFound is the error field of the unknown route response.
	MsgNotFound = "Not Found"

	// MsgRouteNotFound describes the unknown route by method and URI.
	MsgRouteNotFound = "Route %s %s not found"

	// MsgMalformedBody is returned when the body does not match its content
	// type.
	MsgMalformedBody = "Malformed request body"

	// MsgBodyTooLarge is returned when the body exceeds the configured limit.
	MsgBodyTooLarge = "Request body too large"

	// MsgTooManyParameters is returned for urlencoded bodies with too many
	// fields.
	MsgTooManyParameters = "Too many parameters"

	// MsgHealthCheckTimedOut reports a check that outlived its timeout.
	MsgHealthCheckTimedOut = "health check timed out after %s"

	// MsgHealthCheckPanicked reports a check that panicked.
	MsgHealthCheckPanicked = "health check panicked: %v"
)
