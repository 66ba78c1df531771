package models

// ErrorResponse is the body written by the global error handler.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails describes a failed request. Stack is only populated outside
// production.
type ErrorDetails struct {
	Name    string         `json:"name"`
	Message string         `json:"message"`
	Errors  map[string]any `json:"errors,omitempty"`
	Stack   string         `json:"stack,omitempty"`
}

// NotFoundResponse is returned for requests that match no route.
type NotFoundResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// PingResponse is the liveness answer of GET /ping.
type PingResponse struct {
	Timestamp string `json:"timestamp"`
}

// FieldIssue is one entry of a request validation failure, grouped by field
// path in the "errors" map of a validation error response.
type FieldIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
