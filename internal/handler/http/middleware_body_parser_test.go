package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/AmirOssanloo/pkg-sits-node-service/apperr"
	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedBody struct {
	parsed any
	raw    string
}

func bodyRouter(t *testing.T, cfg *configuration.Config, got *capturedBody) http.Handler {
	t.Helper()
	return newTestHandler(t, cfg, Options{}).Init(func(r chi.Router) {
		r.Post("/echo", func(w http.ResponseWriter, r *http.Request) {
			got.parsed = GetRequestContext(r).Body()
			data, _ := io.ReadAll(r.Body)
			got.raw = string(data)
			w.WriteHeader(http.StatusNoContent)
		})
	})
}

func postBody(contentType, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

func TestBodyParser_ParsesSupportedTypes(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		rawEnabled  bool
		textEnabled bool
		want        any
	}{
		{
			name:        "json object",
			contentType: "application/json",
			body:        `{"name":"gopher","age":13}`,
			want:        map[string]any{"name": "gopher", "age": float64(13)},
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        `[1,2]`,
			want:        []any{float64(1), float64(2)},
		},
		{
			name:        "vendor json",
			contentType: "application/vnd.api+json",
			body:        `{"ok":true}`,
			want:        map[string]any{"ok": true},
		},
		{
			name:        "empty json body",
			contentType: "application/json",
			body:        "  ",
			want:        nil,
		},
		{
			name:        "urlencoded",
			contentType: "application/x-www-form-urlencoded",
			body:        "a=1&b=2&b=3",
			want:        url.Values{"a": {"1"}, "b": {"2", "3"}},
		},
		{
			name:        "text when enabled",
			contentType: "text/plain",
			body:        "hello",
			textEnabled: true,
			want:        "hello",
		},
		{
			name:        "text when disabled",
			contentType: "text/plain",
			body:        "hello",
			want:        nil,
		},
		{
			name:        "raw when enabled",
			contentType: "application/octet-stream",
			body:        "\x00\x01",
			rawEnabled:  true,
			want:        []byte{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.Core.BodyParser.Raw.Enabled = tt.rawEnabled
			cfg.Core.BodyParser.Text.Enabled = tt.textEnabled
			var got capturedBody

			rr := serve(bodyRouter(t, cfg, &got), postBody(tt.contentType, tt.body))

			require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
			assert.Equal(t, tt.want, got.parsed)
			assert.Equal(t, tt.body, got.raw)
		})
	}
}

func TestBodyParser_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		limit       string
		wantStatus  int
		wantName    string
	}{
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"name":`,
			wantStatus:  http.StatusBadRequest,
			wantName:    apperr.NameValidation,
		},
		{
			name:        "json over limit",
			contentType: "application/json",
			body:        `{"name":"` + strings.Repeat("x", 64) + `"}`,
			limit:       "16b",
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantName:    apperr.NameBasic,
		},
		{
			name:        "too many form parameters",
			contentType: "application/x-www-form-urlencoded",
			body:        strings.Repeat("a=1&", maxFormParameters) + "a=1",
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantName:    apperr.NameBasic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			if tt.limit != "" {
				cfg.Core.BodyParser.JSON.Limit = tt.limit
			}
			var got capturedBody

			rr := serve(bodyRouter(t, cfg, &got), postBody(tt.contentType, tt.body))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantName, decodeError(t, rr).Name)
		})
	}
}

func TestNewBodyParser_InvalidLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.Core.BodyParser.JSON.Limit = "lots"

	_, err := NewHandler(cfg, nil, Options{})

	assert.ErrorIs(t, err, ErrInvalidBodyLimit)
}

func TestBodyParser_LimitsUseBinaryUnits(t *testing.T) {
	p, err := newBodyParser(configuration.DefaultConfig().Core.BodyParser)

	require.NoError(t, err)
	assert.Equal(t, int64(10*1024*1024), p.limits[bodyJSON])
}
