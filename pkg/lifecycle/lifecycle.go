// Package lifecycle runs a service plus its HTTP server and handles
// signal-driven shutdown.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	ShutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Service defines the interface that all long-running services
// implement.
type Service interface {
	Start(context.Context) error
	Stop() error
}

// ServerOptions holds configuration for running a service.
type ServerOptions struct {
	ListenAddr  string
	ServiceName string
	Service     Service
	Handler     http.Handler
	Logger      *logrus.Logger
}

// RunServer starts the service and its HTTP server, then blocks until
// a termination signal or a fatal error, shutting both down cleanly.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := opts.Logger

	log.WithField("service", opts.ServiceName).Info("Starting service")

	errChan := make(chan error, 2)

	if err := opts.Service.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	httpServer := &http.Server{
		Addr:              opts.ListenAddr,
		Handler:           opts.Handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.WithField("addr", opts.ListenAddr).Info("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("Shutting down")
	case err := <-errChan:
		log.WithError(err).Error("Fatal error, shutting down")

		return shutdown(httpServer, opts.Service, log, err)
	case <-ctx.Done():
	}

	return shutdown(httpServer, opts.Service, log, nil)
}

func shutdown(httpServer *http.Server, svc Service, log *logrus.Logger, cause error) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	if err := svc.Stop(); err != nil {
		log.WithError(err).Error("Service shutdown failed")
	}

	return cause
}
