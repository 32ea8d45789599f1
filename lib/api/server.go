package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// Server runs the admin API until stopped.
type Server struct {
	address    string
	httpServer *http.Server
	listener   net.Listener
	wg         sync.WaitGroup
}

// NewServer prepares a server for handler on address.
func NewServer(address string, handler http.Handler) *Server {
	return &Server{
		address: address,
		httpServer: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start binds the address and serves in the background. Bind errors are
// returned immediately.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return oops.Wrapf(err, "listen on %s", s.address)
	}
	s.listener = ln

	log.WithFields(logger.Fields{
		"at":      "(Server) Start",
		"address": ln.Addr().String(),
	}).Info("starting admin API")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithFields(logger.Fields{
				"at":     "(Server) Start",
				"reason": err.Error(),
			}).Error("admin API server error")
		}
	}()
	return nil
}

// Addr is the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down gracefully, waiting up to five seconds for
// active requests.
func (s *Server) Stop() {
	log.WithField("at", "(Server) Stop").Info("stopping admin API")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.WithFields(logger.Fields{
			"at":     "(Server) Stop",
			"reason": err.Error(),
		}).Error("error during server shutdown")
	}
	s.wg.Wait()

	log.WithField("at", "(Server) Stop").Info("admin API stopped")
}
