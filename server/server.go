// Package server exposes unit conversion over the network: a Connect
// service (which also answers gRPC and gRPC-Web on the same port) and a
// language server for unit worksheets.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tliron/commonlog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/chazu/unitconv/registry"
)

// ConversionServer serves the ConversionService over HTTP/1.1 and
// cleartext HTTP/2.
type ConversionServer struct {
	service *ConversionService
	mux     *http.ServeMux
	log     commonlog.Logger
}

// New creates a ConversionServer backed by reg.
func New(reg *registry.Registry) *ConversionServer {
	s := &ConversionServer{
		service: NewConversionService(reg),
		mux:     http.NewServeMux(),
		log:     commonlog.GetLogger("unitconv.server"),
	}
	s.service.Register(s.mux)
	return s
}

// Handler returns the root handler. HTTP/2 without TLS is accepted so gRPC
// clients can connect directly.
func (s *ConversionServer) Handler() http.Handler {
	return h2c.NewHandler(s.mux, &http2.Server{})
}

// ListenAndServe starts the HTTP server on the given address.
// The address should be in the form "host:port" or ":port".
func (s *ConversionServer) ListenAndServe(addr string) error {
	return s.Serve(context.Background(), addr)
}

// Serve runs the server until ctx is cancelled, then shuts it down
// gracefully.
func (s *ConversionServer) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Noticef("listening on %s", addr)
		s.log.Infof("Connect (HTTP/JSON): http://%s%s", addr, ConvertProcedure)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.log.Notice("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
