package nodeservice

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func newTestConfig() *configuration.Config {
	cfg := configuration.DefaultConfig()
	cfg.Name = "nodeservice-test"
	cfg.Environment = "test"
	cfg.NodeEnv = "test"
	cfg.Core.Host = "127.0.0.1"
	cfg.Core.Port = 0
	cfg.Core.Shutdown.Signals = nil
	return cfg
}

type LifecycleSuite struct {
	suite.Suite

	logs *bytes.Buffer
	svc  *Service
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}

func (s *LifecycleSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	s.svc = New(newTestConfig(), WithLogOutput(s.logs), WithoutExit())
}

func (s *LifecycleSuite) TestNewStartsCreated() {
	s.Equal(StateCreated, s.svc.State())
	s.Nil(s.svc.Handler())
	s.Nil(s.svc.Addr())
	s.Equal(server.StateIdle, s.svc.ShutdownState())
}

func (s *LifecycleSuite) TestSetupTwice() {
	runner, err := s.svc.Setup(SetupOptions{})
	s.Require().NoError(err)
	s.NotNil(runner)
	s.Equal(StateBootstrapped, s.svc.State())
	s.NotNil(s.svc.Handler())

	_, err = s.svc.Setup(SetupOptions{})
	s.ErrorIs(err, ErrAlreadyBootstrapped)
	s.EqualError(err, "the app has already been bootstrapped")
}

func (s *LifecycleSuite) TestRunBeforeSetup() {
	err := s.svc.Run(context.Background(), RunOptions{})

	s.ErrorIs(err, ErrNotBootstrapped)
	s.Equal(StateCreated, s.svc.State())
}

func (s *LifecycleSuite) TestRunTwice() {
	runner, err := s.svc.Setup(SetupOptions{})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, RunOptions{})
	}()

	s.Require().Eventually(func() bool { return s.svc.Addr() != nil }, 2*time.Second, 10*time.Millisecond)
	s.Equal(StateRunning, s.svc.State())

	err = s.svc.Run(context.Background(), RunOptions{})
	s.ErrorIs(err, ErrAlreadyStarted)
	s.EqualError(err, "the app has already been started")

	cancel()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(2 * time.Second):
		s.Fail("Run did not return after cancellation")
	}
	s.Equal(server.StateDone, s.svc.ShutdownState())
}

func (s *LifecycleSuite) TestSetupRejectsUnknownProvider() {
	cfg := newTestConfig()
	cfg.Core.Auth = &configuration.AuthConfig{
		Strategies: map[string]configuration.AuthStrategy{
			"main": {Provider: "ldap"},
		},
	}
	svc := New(cfg, WithLogOutput(s.logs), WithoutExit())

	_, err := svc.Setup(SetupOptions{})

	s.Error(err)
	s.Equal(StateCreated, svc.State())
}

func (s *LifecycleSuite) TestFailBeforeRunShutsDownOnStart() {
	_, err := s.svc.Setup(SetupOptions{})
	s.Require().NoError(err)

	boom := errors.New("queue consumer died")
	s.svc.Fail(boom)

	err = s.svc.Run(context.Background(), RunOptions{})

	s.ErrorIs(err, boom)
	s.Equal(server.StateDone, s.svc.ShutdownState())
	s.Contains(s.logs.String(), "Caught unrecoverable error")
}

func (s *LifecycleSuite) TestLoggerWritesToConfiguredOutput() {
	s.svc.Logger().Info().Msg("hello from test")

	s.Contains(s.logs.String(), "hello from test")
	s.Contains(s.logs.String(), `"role":"nodeservice-test"`)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, "created"},
		{StateBootstrapped, "bootstrapped"},
		{StateRunning, "running"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestBuildOptions_Defaults(t *testing.T) {
	o, err := buildOptions(nil)
	require.NoError(t, err)

	assert.NotNil(t, o.LogOutput)
	assert.NotNil(t, o.Registry)
	assert.IsType(t, server.ProcessExiter{}, o.Exiter)
	assert.False(t, o.DisableExit)
	assert.Equal(t, "N/A", o.BuildInfo.BuildVersion())
}

func TestBuildOptions_KeepsExplicitValues(t *testing.T) {
	var buf bytes.Buffer
	noop := func(string, map[string]any) (Verifier, error) { return nil, nil }

	o, err := buildOptions([]Option{
		WithLogOutput(&buf),
		WithAuthProvider("custom", noop),
		WithoutExit(),
	})
	require.NoError(t, err)

	assert.Same(t, &buf, o.LogOutput)
	assert.Contains(t, o.Providers, "custom")
	assert.True(t, o.DisableExit)
}

func TestBuildOptions_NilExiterDisablesExit(t *testing.T) {
	o, err := buildOptions([]Option{WithExiter(nil)})
	require.NoError(t, err)

	assert.True(t, o.DisableExit)
}

func TestHandlerServesWithoutRun(t *testing.T) {
	svc := New(newTestConfig(), WithLogOutput(&bytes.Buffer{}), WithoutExit())
	_, err := svc.Setup(SetupOptions{})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
