package http

import "net/http"

// CorrelationIDHeader carries the request correlation id in both directions.
const CorrelationIDHeader = "X-Correlation-ID"

// withCorrelationID keeps an id already stored on the request context, then
// falls back to the incoming header and finally generates a new UUIDv7. The
// id is always echoed in the response.
func (h *Handler) withCorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, rc := ensureRequestContext(r)

		id := rc.CorrelationID()
		if id == "" {
			id = r.Header.Get(CorrelationIDHeader)
		}
		if id == "" {
			id = h.ids.Generate()
		}
		rc.setCorrelationID(id)

		w.Header().Set(CorrelationIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
