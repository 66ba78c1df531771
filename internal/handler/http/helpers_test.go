package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fixedIDs string

func (f fixedIDs) Generate() string { return string(f) }

func newTestConfig() *configuration.Config {
	cfg := configuration.DefaultConfig()
	cfg.Name = "test-service"
	cfg.Environment = "test"
	cfg.NodeEnv = "test"
	return cfg
}

func newTestHandler(t *testing.T, cfg *configuration.Config, opts Options) *Handler {
	t.Helper()
	if opts.IDs == nil {
		opts.IDs = fixedIDs("generated-id")
	}
	h, err := NewHandler(cfg, logger.Nop(), opts)
	require.NoError(t, err)
	return h
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorDetails {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body.Error
}

func withJWTAuth(cfg *configuration.Config, paths ...string) {
	auth := &configuration.AuthConfig{
		Strategies: map[string]configuration.AuthStrategy{
			"main": {Provider: "jwt", Config: map[string]any{"secret": testSecret}},
		},
	}
	for _, p := range paths {
		auth.Paths = append(auth.Paths, configuration.AuthPath{Path: p, Strategy: "main"})
	}
	cfg.Core.Auth = auth
}
