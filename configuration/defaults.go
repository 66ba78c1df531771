package configuration

import (
	"net"
	"strconv"
	"time"
)

const (
	DefaultName = "new-service"
	DefaultHost = "0.0.0.0"
	DefaultPort = 3000

	DefaultBodyLimit     = "10mb"
	DefaultHealthTimeout = 5 * time.Second
)

// Defaults returns the lowest configuration layer used by [Assemble]. Every
// key present here is present in the merged result.
func Defaults() Tree {
	return Tree{
		"name": DefaultName,
		"core": Tree{
			"host": DefaultHost,
			"port": DefaultPort,
		},
	}
}

// DefaultConfig returns a Config holding every schema default. Validation
// decodes the merged tree on top of it, so keys absent from the tree keep
// these values.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			Host: DefaultHost,
			Port: DefaultPort,
			Helmet: HelmetConfig{
				Frameguard:     true,
				NoSniff:        true,
				XSSFilter:      true,
				HSTS:           true,
				HSTSMaxAge:     15552000,
				ReferrerPolicy: "no-referrer",
			},
			BodyParser: BodyParserConfig{
				JSON:       BodyLimit{Limit: DefaultBodyLimit},
				URLEncoded: BodyLimit{Limit: DefaultBodyLimit},
				Raw:        OptionalBodyLimit{Limit: DefaultBodyLimit},
				Text:       OptionalBodyLimit{Limit: DefaultBodyLimit},
			},
			HTTPS: HTTPSConfig{Options: map[string]any{}},
			Health: HealthConfig{
				Enabled: true,
				Path:    "/health",
				Timeout: DefaultHealthTimeout,
			},
			Metrics: MetricsConfig{Path: "/metrics"},
			Logger:  LoggerConfig{Level: "info", Format: "json"},
			Shutdown: ShutdownConfig{
				Signals: []string{"SIGTERM", "SIGINT"},
			},
		},
	}
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
