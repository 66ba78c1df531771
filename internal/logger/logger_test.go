package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_RoleField verifies that every log entry produced by a logger
// created with NewLogger contains the expected "role" field.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role", WithOutput(&buf))

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("caller-role", WithOutput(&buf))
	assert.Equal(t, "func", zerolog.CallerFieldName)

	l.Info().Msg("who called")
	entry := decodeEntry(t, &buf)
	assert.Contains(t, entry["func"], "TestNewLogger_CallerFieldName")
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "default is info", level: "", wantDebug: false, wantInfo: true},
		{name: "debug", level: "debug", wantDebug: true, wantInfo: true},
		{name: "upper case", level: "DEBUG", wantDebug: true, wantInfo: true},
		{name: "warn hides info", level: "warn", wantDebug: false, wantInfo: false},
		{name: "unknown keeps default", level: "chatty", wantDebug: false, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger("lvl", WithOutput(&buf), WithLevel(tt.level))

			l.Debug().Msg("d")
			assert.Equal(t, tt.wantDebug, buf.Len() > 0)

			buf.Reset()
			l.Info().Msg("i")
			assert.Equal(t, tt.wantInfo, buf.Len() > 0)
		})
	}
}

// TestNewLogger_PrettyFormat verifies that the console writer is used.
func TestNewLogger_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("pretty", WithOutput(&buf), WithFormat(FormatPretty))

	l.Info().Msg("readable")

	assert.Contains(t, buf.String(), "readable")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "pretty output should not be JSON")
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

// TestGetChildLogger_InheritsFields verifies that the child logger is a
// distinct instance that inherits context fields from the parent.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role", WithOutput(&buf))

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Info().Msg("child message")
	assert.Equal(t, "inherited-role", decodeEntry(t, &buf)["role"])
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("srv", WithOutput(&buf))

	l.StdLogger("http.Server").Printf("http: TLS handshake error from %s\n", "10.0.0.1:5555")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "http.Server", entry["source"])
	assert.Equal(t, "http: TLS handshake error from 10.0.0.1:5555", entry["message"])
}

// TestFromContext_ReturnsAttachedLogger verifies that FromContext returns the
// logger that was previously attached to the context via zerolog.
func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("ctx-key", "ctx-value").Logger()
	ctx := zl.WithContext(context.Background())

	l := FromContext(ctx)
	require.NotNil(t, l)
	l.Info().Msg("from context")

	assert.Equal(t, "ctx-value", decodeEntry(t, &buf)["ctx-key"])
}

// TestFromRequest_ReturnsAttachedLogger verifies that FromRequest returns the
// logger attached to the request's context.
func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req-value", decodeEntry(t, &buf)["req-key"])
}

func TestAttached(t *testing.T) {
	assert.False(t, Attached(context.Background()))

	zl := zerolog.New(&bytes.Buffer{})
	assert.True(t, Attached(zl.WithContext(context.Background())))
}
