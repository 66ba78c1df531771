// Package http implements the HTTP transport layer of the node service.
//
// It assembles the middleware pipeline from the configuration (request
// context, correlation id, logging, metrics, error handling, CORS, security
// headers, body parsing, cookies and authentication), mounts the built-in
// ping, health and metrics endpoints and answers unmatched routes with a
// JSON 404. Route handlers report failures through [Handle] or
// [ForwardError]; the error handling middleware is the only component that
// writes error responses.
package http
