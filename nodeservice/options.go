package nodeservice

import (
	"io"
	"os"

	"dario.cat/mergo"
	apphttp "github.com/AmirOssanloo/pkg-sits-node-service/internal/handler/http"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/server"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Options collects the collaborators of a Service. Unset fields are filled
// from defaults in New.
type Options struct {
	LogOutput io.Writer
	BuildInfo models.AppBuildInfo
	Registry  *prometheus.Registry
	Providers map[string]ProviderFactory
	Exiter    Exiter

	// DisableExit keeps the process alive after shutdown so that Run
	// returns.
	DisableExit bool
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		LogOutput: os.Stdout,
		BuildInfo: models.NewAppBuildInfo("", "", ""),
		Registry:  prometheus.NewRegistry(),
		Exiter:    server.ProcessExiter{},
	}
}

// WithLogOutput redirects service logs.
func WithLogOutput(w io.Writer) Option {
	return func(o *Options) {
		o.LogOutput = w
	}
}

// WithBuildInfo sets the version reported by the health endpoint.
func WithBuildInfo(info models.AppBuildInfo) Option {
	return func(o *Options) {
		o.BuildInfo = info
	}
}

// WithRegistry exposes metrics from reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *Options) {
		o.Registry = reg
	}
}

// WithAuthProvider registers a provider usable by auth strategies.
func WithAuthProvider(name string, factory ProviderFactory) Option {
	return func(o *Options) {
		if o.Providers == nil {
			o.Providers = make(map[string]ProviderFactory)
		}
		o.Providers[name] = factory
	}
}

// WithExiter replaces the action taken once shutdown is done. A nil Exiter
// is the same as WithoutExit.
func WithExiter(e Exiter) Option {
	return func(o *Options) {
		o.Exiter = e
		if e == nil {
			o.DisableExit = true
		}
	}
}

// WithoutExit makes Run return after shutdown instead of exiting.
func WithoutExit() Option {
	return func(o *Options) {
		o.DisableExit = true
	}
}

func buildOptions(opts []Option) (Options, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	// Set fields keep their concrete value; only nil and zero fields take
	// the default.
	if err := mergo.Merge(&o, defaultOptions(), mergo.WithoutDereference); err != nil {
		return Options{}, err
	}
	return o, nil
}

// SetupOptions configures the Bootstrapped service.
type SetupOptions struct {
	// Routes registers application routes after the built-in endpoints.
	Routes       func(r chi.Router)
	HealthChecks []HealthCheck
}

// RunOptions configures the Running service.
type RunOptions struct {
	// ReleaseResources runs once connections are drained. Its error is
	// logged and does not change the exit status.
	ReleaseResources ReleaseFunc
}

// Type aliases so that callers do not import internal packages.
type (
	HandlerFunc      = apphttp.HandlerFunc
	HealthCheck      = apphttp.HealthCheck
	RequestSchemas   = apphttp.RequestSchemas
	ValidatedRequest = apphttp.ValidatedRequest
	Verifier         = apphttp.Verifier
	ProviderFactory  = apphttp.ProviderFactory
	ReleaseFunc      = server.ReleaseFunc
	Exiter           = server.Exiter
	Identity         = models.Identity
)
