package http

import "net/http"

// withCookies exposes the request cookies as a name to value map. A cookie
// sent twice keeps its first value.
func (h *Handler) withCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, rc := ensureRequestContext(r)

		cookies := make(map[string]string)
		for _, c := range r.Cookies() {
			if _, seen := cookies[c.Name]; !seen {
				cookies[c.Name] = c.Value
			}
		}
		rc.setCookies(cookies)

		next.ServeHTTP(w, r)
	})
}
