package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/AmirOssanloo/pkg-sits-node-service/apperr"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/app"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
)

// HandlerFunc is a route handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to [http.HandlerFunc], forwarding a returned error to the
// error handling middleware.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			ForwardError(w, r, err)
		}
	}
}

// ForwardError hands err to the error handling middleware. Without one in the
// chain the error response is written immediately.
func ForwardError(w http.ResponseWriter, r *http.Request, err error) {
	if rc := requestContextFrom(r.Context()); rc != nil && rc.recordError(err, debug.Stack()) {
		return
	}
	writeError(w, r, err, nil, true)
}

// withErrorHandler is the single writer of error responses. It converts
// panics and forwarded errors into a JSON body once the downstream chain has
// returned.
func (h *Handler) withErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, rc := ensureRequestContext(r)
		rc.enableErrorCapture()
		rw := wrapResponseWriter(w)

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				rc.recordError(panicError(rec), debug.Stack())
			}

			err, stack := rc.takeError()
			if err == nil {
				return
			}
			if rw.wroteHeader {
				logger.FromRequest(r).Err(err).Msg("error after response was started")
				return
			}
			writeError(rw, r, err, stack, h.production())
		}()

		next.ServeHTTP(rw, r)
	})
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", rec)
}

// writeError renders err. Taxonomy errors keep their status, name and
// details; anything else is a 500 whose message is hidden in production.
func writeError(w http.ResponseWriter, r *http.Request, err error, stack []byte, production bool) {
	log := logger.FromRequest(r)

	status := http.StatusInternalServerError
	var details models.ErrorDetails
	if be, ok := toTaxonomy(err); ok {
		status = be.Status
		details = models.ErrorDetails{Name: be.Name, Message: be.Message, Errors: be.Errors}
	} else {
		details = models.ErrorDetails{Name: apperr.NameInternal, Message: app.MsgUnexpectedError}
		if !production {
			details.Message = err.Error()
		}
	}
	if !production && stack != nil {
		details.Stack = string(stack)
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, werr := utils.WriteJSON(w, models.ErrorResponse{Error: details}, status); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}
