package nodeservice

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	apphttp "github.com/AmirOssanloo/pkg-sits-node-service/internal/handler/http"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/server"
	"github.com/rs/zerolog"
)

var (
	ErrAlreadyBootstrapped = errors.New("the app has already been bootstrapped")
	ErrAlreadyStarted      = errors.New("the app has already been started")
	ErrNotBootstrapped     = errors.New("the app has not been bootstrapped")
)

// State is the lifecycle position of a Service.
type State int

const (
	StateCreated State = iota
	StateBootstrapped
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateBootstrapped:
		return "bootstrapped"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Runner is returned by Setup.
type Runner interface {
	Run(ctx context.Context, opts RunOptions) error
}

// Service owns one configuration, one router and one listener. Lifecycle
// state belongs to the instance, so independent services can coexist in a
// process.
type Service struct {
	cfg       *configuration.Config
	opts      Options
	optsErr   error
	logger    *logger.Logger
	startedAt time.Time

	mu      sync.Mutex
	state   State
	handler *apphttp.Handler
	router  http.Handler
	srv     *server.Server
	pending []error
}

// New creates a Service in the Created state.
func New(cfg *configuration.Config, opts ...Option) *Service {
	o, err := buildOptions(opts)

	log := logger.NewLogger(cfg.Name,
		logger.WithLevel(cfg.Core.Logger.Level),
		logger.WithFormat(cfg.Core.Logger.Format),
		logger.WithOutput(o.LogOutput),
	)

	return &Service{
		cfg:       cfg,
		opts:      o,
		optsErr:   err,
		logger:    log,
		startedAt: time.Now(),
	}
}

// Load assembles the configuration from NODE_ENV and CONFIG_DIR and creates
// a Service from it.
func Load(opts ...Option) (*Service, error) {
	cfg, err := configuration.Assemble()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// Setup assembles the middleware pipeline and routes. It can be called once.
func (s *Service) Setup(opts SetupOptions) (Runner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCreated {
		return nil, ErrAlreadyBootstrapped
	}
	if s.optsErr != nil {
		return nil, fmt.Errorf("invalid service options: %w", s.optsErr)
	}

	h, err := apphttp.NewHandler(s.cfg, s.logger, apphttp.Options{
		HealthChecks: opts.HealthChecks,
		BuildInfo:    s.opts.BuildInfo,
		Registry:     s.opts.Registry,
		Providers:    s.opts.Providers,
		StartedAt:    s.startedAt,
	})
	if err != nil {
		return nil, err
	}
	router := h.Init(opts.Routes)

	exiter := s.opts.Exiter
	if s.opts.DisableExit {
		exiter = nil
	}
	srv, err := server.NewServer(router, s.cfg, s.logger, server.WithProcessExiter(exiter))
	if err != nil {
		return nil, err
	}

	s.handler = h
	s.router = router
	s.srv = srv
	s.state = StateBootstrapped
	s.logger.Info().Msg("service bootstrapped")

	return s, nil
}

// Run binds the listener and serves until shutdown. It can be called once,
// after Setup.
func (s *Service) Run(ctx context.Context, opts RunOptions) error {
	s.mu.Lock()
	switch s.state {
	case StateCreated:
		s.mu.Unlock()
		return ErrNotBootstrapped
	case StateRunning:
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.state = StateRunning
	srv := s.srv
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, err := range pending {
		srv.Fail(err)
	}

	if err := srv.Listen(); err != nil {
		s.logger.Error().Err(err).Msg("The app crashed")
		return err
	}

	return srv.Run(ctx, opts.ReleaseResources)
}

// Fail reports an unrecoverable error. On a running service it starts an
// error shutdown; before Run the error is kept and triggers shutdown as soon
// as Run starts.
func (s *Service) Fail(err error) {
	if err == nil {
		return
	}

	s.mu.Lock()
	srv, state := s.srv, s.state
	if state != StateRunning {
		s.pending = append(s.pending, err)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	srv.Fail(err)
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ShutdownState reports the progress of the shutdown sequence.
func (s *Service) ShutdownState() server.ShutdownState {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return server.StateIdle
	}
	return srv.ShutdownState()
}

// Addr returns the bound listener address, nil until Run has bound it.
func (s *Service) Addr() net.Addr {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Addr()
}

// Handler returns the assembled router, nil before Setup. It can be served
// by any http.Server or httptest.Server.
func (s *Service) Handler() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router
}

// IsSecurePath reports whether requests to path must authenticate.
func (s *Service) IsSecurePath(path string) bool {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()

	return h != nil && h.IsSecurePath(path)
}

func (s *Service) Logger() *zerolog.Logger {
	return &s.logger.Logger
}

func (s *Service) Config() *configuration.Config {
	return s.cfg
}
