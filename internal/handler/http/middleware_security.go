package http

import (
	"net/http"

	"github.com/unrolled/secure"
)

// withSecurityHeaders sets the standard hardening headers selected in the
// helmet section.
func (h *Handler) withSecurityHeaders() func(http.Handler) http.Handler {
	c := h.cfg.Core.Helmet

	opts := secure.Options{
		FrameDeny:             c.Frameguard,
		ContentTypeNosniff:    c.NoSniff,
		BrowserXssFilter:      c.XSSFilter,
		ContentSecurityPolicy: c.ContentSecurityPolicy,
		ReferrerPolicy:        c.ReferrerPolicy,
	}
	if c.HSTS {
		opts.STSSeconds = c.HSTSMaxAge
		opts.STSIncludeSubdomains = true
		opts.ForceSTSHeader = true
	}

	return secure.New(opts).Handler
}
