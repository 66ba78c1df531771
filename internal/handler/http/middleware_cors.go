package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

// withCORS translates the cors section into go-chi/cors options. When
// endPreflightRequests is false preflight requests are passed on to the
// router instead of being answered here.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	c := h.cfg.Core.Cors

	opts := cors.Options{
		AllowedOrigins: c.Origins,
		AllowedMethods: c.Methods,
		AllowedHeaders: c.RequestHeaders,
		ExposedHeaders: c.ResponseHeaders,
	}
	if c.SupportsCredentials != nil {
		opts.AllowCredentials = *c.SupportsCredentials
	}
	if c.MaxAge != nil {
		opts.MaxAge = *c.MaxAge
	}
	if c.EndPreflightRequests != nil {
		opts.OptionsPassthrough = !*c.EndPreflightRequests
	}

	return cors.Handler(opts)
}
