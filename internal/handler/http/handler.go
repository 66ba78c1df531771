package http

import (
	"fmt"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Handler owns everything the middleware pipeline needs at request time.
type Handler struct {
	cfg    *configuration.Config
	logger *logger.Logger

	ids       utils.IDGenerator
	checks    []HealthCheck
	buildInfo models.AppBuildInfo
	startedAt time.Time

	registry *prometheus.Registry
	metrics  *httpMetrics

	bodyParser *bodyParser
	auth       *authMatcher
}

// Options carries the collaborators of a Handler. Zero values are replaced by
// defaults in NewHandler.
type Options struct {
	HealthChecks []HealthCheck
	BuildInfo    models.AppBuildInfo
	Registry     *prometheus.Registry
	IDs          utils.IDGenerator

	// Providers adds or overrides auth providers by name. "jwt" is always
	// available.
	Providers map[string]ProviderFactory

	StartedAt time.Time
}

// NewHandler validates the parts of cfg that can only be checked against the
// runtime (body limits, auth providers) and prepares the pipeline state.
func NewHandler(cfg *configuration.Config, log *logger.Logger, opts Options) (*Handler, error) {
	if log == nil {
		log = logger.Nop()
	}
	if opts.IDs == nil {
		opts.IDs = utils.NewUUIDGenerator()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.StartedAt.IsZero() {
		opts.StartedAt = time.Now()
	}

	parser, err := newBodyParser(cfg.Core.BodyParser)
	if err != nil {
		return nil, fmt.Errorf("error configuring body parser: %w", err)
	}

	auth, err := newAuthMatcher(cfg.Core.Auth, opts.Providers)
	if err != nil {
		return nil, fmt.Errorf("error configuring authentication: %w", err)
	}

	h := &Handler{
		cfg:        cfg,
		logger:     log,
		ids:        opts.IDs,
		checks:     opts.HealthChecks,
		buildInfo:  opts.BuildInfo,
		startedAt:  opts.StartedAt,
		registry:   opts.Registry,
		bodyParser: parser,
		auth:       auth,
	}
	if cfg.Core.Metrics.Enabled {
		h.metrics = newHTTPMetrics(opts.Registry)
	}

	log.Info().Msg("http handler created")
	return h, nil
}

func (h *Handler) production() bool {
	return h.cfg.IsProduction()
}
