// Package utils provides general-purpose helper utilities
// used across different parts of the service runtime.
// Includes tools for working with context, type-safe keys, identifier
// generation, JSON response writing, HTTP client initialization, and JWT
// token generation and verification.
package utils

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequestContextCtxKey is the key under which the per-request state of the
// middleware pipeline is stored.
var RequestContextCtxKey = contextKey("requestContext")
