package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware names, in the order they can appear in the pipeline.
const (
	StepRequestContext = "request-context"
	StepCorrelationID  = "correlation-id"
	StepLogger         = "logger"
	StepMetrics        = "metrics"
	StepErrorHandler   = "error-handler"
	StepCORS           = "cors"
	StepSecurity       = "security-headers"
	StepBodyParser     = "body-parser"
	StepCookies        = "cookies"
	StepAuth           = "auth"
)

// Step is one middleware of the assembled pipeline.
type Step struct {
	Name       string
	Middleware func(http.Handler) http.Handler
}

// Pipeline returns the middleware chain derived from the configuration, outermost
// first. Steps switched off in the configuration are left out.
func (h *Handler) Pipeline() []Step {
	core := h.cfg.Core

	steps := []Step{
		{StepRequestContext, h.withRequestContext},
		{StepCorrelationID, h.withCorrelationID},
		{StepLogger, h.withLogger},
	}
	if core.Metrics.Enabled {
		steps = append(steps, Step{StepMetrics, h.withMetrics})
	}
	steps = append(steps, Step{StepErrorHandler, h.withErrorHandler})
	if core.Cors.Enabled {
		steps = append(steps, Step{StepCORS, h.withCORS()})
	}
	if core.Helmet.Enabled {
		steps = append(steps, Step{StepSecurity, h.withSecurityHeaders()})
	}
	steps = append(steps,
		Step{StepBodyParser, h.withBodyParser},
		Step{StepCookies, h.withCookies},
	)
	if h.auth.enabled() {
		steps = append(steps, Step{StepAuth, h.withAuth})
	}

	return steps
}

// Init assembles the router: pipeline, built-in endpoints, user routes and
// the not-found fallback.
func (h *Handler) Init(routes func(r chi.Router)) *chi.Mux {
	router := chi.NewRouter()
	for _, step := range h.Pipeline() {
		router.Use(step.Middleware)
	}

	router.Get("/ping", h.ping)

	core := h.cfg.Core
	if core.Health.Enabled {
		router.Get(core.Health.Path, h.health)
	}
	if core.Metrics.Enabled {
		router.Method(http.MethodGet, core.Metrics.Path, promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
	}

	if routes != nil {
		routes(router)
	}

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router
}
