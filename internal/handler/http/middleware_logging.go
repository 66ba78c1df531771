package http

import (
	"net/http"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/rs/zerolog"
)

// withLogger attaches a child logger carrying the correlation id unless an
// upstream component already attached one, then writes an access log line
// once the response is done.
func (h *Handler) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if !logger.Attached(ctx) {
			l := h.logger.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("correlation_id", requestContextFrom(ctx).CorrelationID())
			})
			r = r.WithContext(l.WithContext(ctx))
		}
		log := logger.FromRequest(r)

		start := time.Now()
		uri := r.RequestURI
		method := r.Method

		lw := wrapResponseWriter(w)
		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.statusCode()).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
