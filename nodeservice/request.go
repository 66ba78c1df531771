package nodeservice

import (
	"net/http"

	apphttp "github.com/AmirOssanloo/pkg-sits-node-service/internal/handler/http"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/rs/zerolog"
)

// CorrelationIDHeader carries the request correlation id in both directions.
const CorrelationIDHeader = apphttp.CorrelationIDHeader

// Handle adapts a handler that returns an error to http.HandlerFunc.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return apphttp.Handle(fn)
}

// ForwardError hands err to the error handling middleware.
func ForwardError(w http.ResponseWriter, r *http.Request, err error) {
	apphttp.ForwardError(w, r, err)
}

// ValidateRequest compiles schemas into a route middleware.
func ValidateRequest(schemas RequestSchemas) (func(http.Handler) http.Handler, error) {
	return apphttp.ValidateRequest(schemas)
}

func CorrelationID(r *http.Request) string {
	return apphttp.GetRequestContext(r).CorrelationID()
}

// CallerIdentity returns the identity set by the auth middleware, nil on
// unauthenticated paths.
func CallerIdentity(r *http.Request) *Identity {
	return apphttp.GetRequestContext(r).Identity()
}

func Cookies(r *http.Request) map[string]string {
	return apphttp.GetRequestContext(r).Cookies()
}

// Body returns the decoded request body: a JSON value, url.Values, string or
// []byte depending on the content type.
func Body(r *http.Request) any {
	return apphttp.GetRequestContext(r).Body()
}

func RawBody(r *http.Request) []byte {
	return apphttp.GetRequestContext(r).RawBody()
}

func Validated(r *http.Request) ValidatedRequest {
	return apphttp.GetRequestContext(r).Validated()
}

// RequestLogger returns the logger scoped to r, carrying its correlation id.
func RequestLogger(r *http.Request) *zerolog.Logger {
	return &logger.FromRequest(r).Logger
}
