package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
)

type httpServer struct {
	server *http.Server
	core   configuration.CoreConfig
	logger *logger.Logger

	certFile string
	keyFile  string
}

func newHTTPServer(handler http.Handler, core configuration.CoreConfig, log *logger.Logger) (*httpServer, error) {
	s := &httpServer{
		server: &http.Server{
			Addr:     core.Addr(),
			Handler:  handler,
			ErrorLog: log.StdLogger("http"),
		},
		core:   core,
		logger: log,
	}

	if core.HTTPS.Enabled {
		s.certFile, _ = core.HTTPS.Options["certFile"].(string)
		s.keyFile, _ = core.HTTPS.Options["keyFile"].(string)
		if s.certFile == "" || s.keyFile == "" {
			return nil, ErrMissingTLSFiles
		}
		s.server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return s, nil
}

// listen binds the configured address. Address-in-use and permission errors
// get a dedicated diagnostic.
func (s *httpServer) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err == nil {
		return ln, nil
	}

	port := s.core.Port
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		s.logger.Error().Err(err).Msgf("Port %d is already in use", port)
		return nil, fmt.Errorf("%w: %w: %w", ErrBind, ErrAddressInUse, err)
	case errors.Is(err, syscall.EACCES), errors.Is(err, os.ErrPermission):
		s.logger.Error().Err(err).Msgf("Port %d requires elevated privileges", port)
		return nil, fmt.Errorf("%w: %w: %w", ErrBind, ErrPermissionDenied, err)
	default:
		s.logger.Error().Err(err).Msg("Error starting server")
		return nil, fmt.Errorf("%w: %w", ErrBind, err)
	}
}

// serve blocks until the server is shut down. http.ErrServerClosed is not
// reported.
func (s *httpServer) serve(ln net.Listener) error {
	var err error
	if s.core.HTTPS.Enabled {
		err = s.server.ServeTLS(ln, s.certFile, s.keyFile)
	} else {
		err = s.server.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *httpServer) scheme() string {
	if s.core.HTTPS.Enabled {
		return "https"
	}
	return "http"
}

// Shutdown implements [Drainer].
func (s *httpServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// displayHost turns wildcard and loopback addresses into "localhost".
func displayHost(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return addr.String()
	}
	if tcp.IP == nil || tcp.IP.IsUnspecified() || tcp.IP.IsLoopback() {
		return net.JoinHostPort("localhost", fmt.Sprint(tcp.Port))
	}
	return net.JoinHostPort(tcp.IP.String(), fmt.Sprint(tcp.Port))
}
