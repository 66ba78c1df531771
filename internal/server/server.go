package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
)

// Server runs one HTTP listener under a [ShutdownController].
type Server struct {
	http   *httpServer
	cfg    *configuration.Config
	logger *logger.Logger
	exiter Exiter

	mu         sync.Mutex
	ln         net.Listener
	controller *ShutdownController

	errs chan error
}

// Option customises a Server.
type Option func(*Server)

// WithProcessExiter replaces the exiter used once shutdown is done.
func WithProcessExiter(e Exiter) Option {
	return func(s *Server) {
		s.exiter = e
	}
}

func NewServer(handler http.Handler, cfg *configuration.Config, log *logger.Logger, opts ...Option) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}
	log.Info().Msg("creating new server...")

	hs, err := newHTTPServer(handler, cfg.Core, log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		http:   hs,
		cfg:    cfg,
		logger: log,
		exiter: ProcessExiter{},
		errs:   make(chan error, 1),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Listen binds the configured address. Run calls it when the caller did not.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return nil
	}
	ln, err := s.http.listen()
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

// Addr returns the bound address, nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ShutdownState reports the state of the running shutdown controller, idle
// before Run.
func (s *Server) ShutdownState() ShutdownState {
	s.mu.Lock()
	c := s.controller
	s.mu.Unlock()

	if c == nil {
		return StateIdle
	}
	return c.State()
}

// Fail reports an unrecoverable error and starts an error shutdown.
func (s *Server) Fail(err error) {
	select {
	case s.errs <- err:
	default:
		s.logger.Error().Err(err).Msg("error reported while shutdown is pending")
	}
}

// Run serves requests until a configured signal, a Fail call, a serve error
// or cancellation of ctx, then drains connections and calls release. It
// returns once shutdown is done, unless the exiter ends the process first.
func (s *Server) Run(ctx context.Context, release ReleaseFunc) error {
	signals, err := ParseSignals(s.cfg.Core.Shutdown.Signals)
	if err != nil {
		return err
	}
	if err := s.Listen(); err != nil {
		return err
	}

	controller := NewShutdownController(
		ShutdownContext{Drainer: s.http, Release: release, Logger: s.logger},
		WithDrainTimeout(s.cfg.Core.Shutdown.Timeout),
		WithExiter(s.exiter),
	)
	s.mu.Lock()
	s.controller = controller
	ln := s.ln
	s.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	if len(signals) > 0 {
		signal.Notify(sigCh, signals...)
		defer signal.Stop(sigCh)
	}

	go func() {
		if err := s.http.serve(ln); err != nil {
			s.Fail(fmt.Errorf("http server stopped: %w", err))
		}
	}()

	s.logger.Info().Msgf("Server is running at %s://%s", s.http.scheme(), displayHost(ln.Addr()))
	s.logger.Info().Msgf("Process is using PID %d", os.Getpid())

	controller.Watch(ctx, sigCh, s.errs)

	reason := controller.Reason()
	if reason.Kind == TriggerError {
		return errors.Join(reason.Err, controller.Err())
	}
	return controller.Err()
}
