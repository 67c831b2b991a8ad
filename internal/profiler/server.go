// Package profiler serves pprof endpoints on localhost for debugging the TUI.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/rs/zerolog"
)

type Server struct {
	httpServer *http.Server
	listener   net.Listener
	port       int
	log        zerolog.Logger
}

// New creates a server bound to 127.0.0.1:port. Port 0 picks a free port.
func New(port int, log zerolog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &Server{
		httpServer: &http.Server{Handler: mux},
		port:       port,
		log:        log,
	}
}

// Start listens and serves in the background. Serve errors after a
// successful listen are logged.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("profiler listen: %w", err)
	}
	s.listener = listener

	s.log.Info().Str("addr", listener.Addr().String()).Msg("profiler listening")

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("profiler stopped")
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Debug().Msg("profiler shutting down")
	return s.httpServer.Shutdown(ctx)
}
