package models

// HealthStatus is the outcome of a health check or of the whole report.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthError HealthStatus = "error"
)

// HealthReport is the body of the health endpoint.
type HealthReport struct {
	Status    HealthStatus `json:"status"`
	Timestamp string       `json:"timestamp"`
	Service   string       `json:"service"`
	Version   string       `json:"version"`

	// Uptime is the process uptime in seconds.
	Uptime float64 `json:"uptime"`

	// ResponseTime is the time spent running every check, in milliseconds.
	ResponseTime int64 `json:"responseTime"`

	Checks map[string]HealthCheckResult `json:"checks"`
}

// HealthCheckResult is the outcome of a single named check.
type HealthCheckResult struct {
	Status       HealthStatus `json:"status"`
	Error        string       `json:"error,omitempty"`
	ResponseTime int64        `json:"responseTime"`
}
