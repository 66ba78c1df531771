package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/docker/go-units"
)

// maxFormParameters caps the number of url-encoded fields.
const maxFormParameters = 1000

type bodyKind int

const (
	bodyJSON bodyKind = iota
	bodyForm
	bodyRaw
	bodyText
)

type bodyParser struct {
	limits map[bodyKind]int64

	raw  bool
	text bool
}

func newBodyParser(cfg configuration.BodyParserConfig) (*bodyParser, error) {
	p := &bodyParser{
		limits: make(map[bodyKind]int64, 4),
		raw:    cfg.Raw.Enabled,
		text:   cfg.Text.Enabled,
	}

	for kind, limit := range map[bodyKind]string{
		bodyJSON: cfg.JSON.Limit,
		bodyForm: cfg.URLEncoded.Limit,
		bodyRaw:  cfg.Raw.Limit,
		bodyText: cfg.Text.Limit,
	} {
		if limit == "" {
			limit = configuration.DefaultBodyLimit
		}
		n, err := units.RAMInBytes(limit)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBodyLimit, limit)
		}
		p.limits[kind] = n
	}

	return p, nil
}

// kindFor selects the parser for a Content-Type; ok is false for types that
// are left untouched.
func (p *bodyParser) kindFor(contentType string) (bodyKind, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return 0, false
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return bodyJSON, true
	case mediaType == "application/x-www-form-urlencoded":
		return bodyForm, true
	case p.raw && mediaType == "application/octet-stream":
		return bodyRaw, true
	case p.text && mediaType == "text/plain":
		return bodyText, true
	default:
		return 0, false
	}
}

// withBodyParser reads supported bodies up to their configured limit, stores
// the parsed value on the request context and replays the raw bytes to the
// route handler.
func (h *Handler) withBodyParser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}
		kind, ok := h.bodyParser.kindFor(r.Header.Get("Content-Type"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		r, rc := ensureRequestContext(r)

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.bodyParser.limits[kind]))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				ForwardError(w, r, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit))
				return
			}
			ForwardError(w, r, fmt.Errorf("%w: %w", ErrMalformedBody, err))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(data))

		body, err := decodeBody(kind, data)
		if err != nil {
			ForwardError(w, r, err)
			return
		}
		rc.setBody(body, data)

		next.ServeHTTP(w, r)
	})
}

func decodeBody(kind bodyKind, data []byte) (any, error) {
	switch kind {
	case bodyJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, nil
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedBody)
		}
		return v, nil
	case bodyForm:
		if strings.Count(string(data), "&") >= maxFormParameters {
			return nil, ErrTooManyParameters
		}
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid form encoding", ErrMalformedBody)
		}
		return values, nil
	case bodyText:
		return string(data), nil
	default:
		return data, nil
	}
}
