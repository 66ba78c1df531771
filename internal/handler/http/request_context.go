package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
)

// RequestContext is the per-request state shared by the middleware pipeline
// and route handlers. It is created by the first middleware and lives in the
// request context under [utils.RequestContextCtxKey].
type RequestContext struct {
	mu sync.Mutex

	correlationID string
	identity      *models.Identity
	cookies       map[string]string
	body          any
	rawBody       []byte
	validated     ValidatedRequest

	// captureErrors is set by the error handling middleware; until then
	// forwarded errors are written directly.
	captureErrors bool
	err           error
	stack         []byte
}

// ValidatedRequest holds the parts of a request that passed schema
// validation.
type ValidatedRequest struct {
	Body   any
	Query  map[string]any
	Params map[string]any
}

// GetRequestContext returns the state attached to r, or nil when the request
// did not pass through the pipeline.
func GetRequestContext(r *http.Request) *RequestContext {
	return requestContextFrom(r.Context())
}

func requestContextFrom(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(utils.RequestContextCtxKey).(*RequestContext)
	return rc
}

// ensureRequestContext attaches a fresh RequestContext to r unless one is
// already present.
func ensureRequestContext(r *http.Request) (*http.Request, *RequestContext) {
	if rc := requestContextFrom(r.Context()); rc != nil {
		return r, rc
	}
	rc := &RequestContext{}
	return r.WithContext(context.WithValue(r.Context(), utils.RequestContextCtxKey, rc)), rc
}

func (rc *RequestContext) CorrelationID() string {
	if rc == nil {
		return ""
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.correlationID
}

// Identity returns the authenticated caller, nil on public routes.
func (rc *RequestContext) Identity() *models.Identity {
	if rc == nil {
		return nil
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.identity
}

func (rc *RequestContext) Cookies() map[string]string {
	if rc == nil {
		return nil
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cookies
}

// Body returns the parsed request body: decoded JSON, url.Values for forms,
// []byte for raw bodies and string for text bodies.
func (rc *RequestContext) Body() any {
	if rc == nil {
		return nil
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.body
}

// RawBody returns the bytes read by the body parser.
func (rc *RequestContext) RawBody() []byte {
	if rc == nil {
		return nil
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.rawBody
}

func (rc *RequestContext) Validated() ValidatedRequest {
	if rc == nil {
		return ValidatedRequest{}
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.validated
}

func (rc *RequestContext) setCorrelationID(id string) {
	rc.mu.Lock()
	rc.correlationID = id
	rc.mu.Unlock()
}

func (rc *RequestContext) setIdentity(identity *models.Identity) {
	rc.mu.Lock()
	rc.identity = identity
	rc.mu.Unlock()
}

func (rc *RequestContext) setCookies(cookies map[string]string) {
	rc.mu.Lock()
	rc.cookies = cookies
	rc.mu.Unlock()
}

func (rc *RequestContext) setBody(body any, raw []byte) {
	rc.mu.Lock()
	rc.body = body
	rc.rawBody = raw
	rc.mu.Unlock()
}

func (rc *RequestContext) setValidated(v ValidatedRequest) {
	rc.mu.Lock()
	rc.validated = v
	rc.mu.Unlock()
}

// recordError keeps the first error forwarded during the request.
func (rc *RequestContext) recordError(err error, stack []byte) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if !rc.captureErrors {
		return false
	}
	if rc.err == nil {
		rc.err = err
		rc.stack = stack
	}
	return true
}

func (rc *RequestContext) takeError() (error, []byte) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	err, stack := rc.err, rc.stack
	rc.err, rc.stack = nil, nil
	return err, stack
}

func (rc *RequestContext) enableErrorCapture() {
	rc.mu.Lock()
	rc.captureErrors = true
	rc.mu.Unlock()
}

func (h *Handler) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, _ = ensureRequestContext(r)
		next.ServeHTTP(w, r)
	})
}
