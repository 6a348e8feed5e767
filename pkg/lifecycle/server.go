package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfreeman451/camrelay/pkg/grpc"
)

const (
	ShutdownTimeout = 10 * time.Second
)

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for running a service.
type ServerOptions struct {
	ServiceName string
	Service     Service

	// HealthAddr, when set, serves grpc.health.v1 for ServiceName.
	HealthAddr string

	// Auxiliary services run alongside Service and are stopped after it.
	Auxiliary []Service

	// Signals overrides the shutdown signals. Defaults to SIGINT and SIGTERM.
	Signals []os.Signal
}

// RunServer starts a service with the provided options and handles lifecycle.
// It returns when a shutdown signal arrives, ctx is canceled, or a service fails.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	errChan := make(chan error, 2+len(opts.Auxiliary))

	var healthServer *grpc.HealthServer

	if opts.HealthAddr != "" {
		healthServer = grpc.NewHealthServer(opts.HealthAddr)

		if err := healthServer.Listen(); err != nil {
			return fmt.Errorf("failed to setup health server: %w", err)
		}

		healthServer.SetServing(opts.ServiceName, true)

		go func() {
			if err := healthServer.Start(); err != nil {
				errChan <- fmt.Errorf("health server: %w", err)
			}
		}()
	}

	for _, aux := range opts.Auxiliary {
		go func(svc Service) {
			if err := svc.Start(ctx); err != nil {
				errChan <- err
			}
		}(aux)
	}

	serviceDone := make(chan struct{})

	go func() {
		defer close(serviceDone)

		if err := opts.Service.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	return handleShutdown(ctx, cancel, opts, healthServer, errChan, serviceDone)
}

func handleShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	opts *ServerOptions,
	healthServer *grpc.HealthServer,
	errChan chan error,
	serviceDone <-chan struct{}) error {
	signals := opts.Signals
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	defer signal.Stop(sigChan)

	var runErr error

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)

		runErr = fmt.Errorf("service error: %w", err)
	case <-serviceDone:
		log.Printf("Service %s exited, initiating shutdown", opts.ServiceName)

		select {
		case err := <-errChan:
			runErr = fmt.Errorf("service error: %w", err)
		default:
		}
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	if healthServer != nil {
		healthServer.SetServing(opts.ServiceName, false)
	}

	if err := opts.Service.Stop(shutdownCtx); err != nil {
		log.Printf("Error during service shutdown: %v", err)

		runErr = errors.Join(runErr, fmt.Errorf("shutdown error: %w", err))
	}

	cancel()

	for _, aux := range opts.Auxiliary {
		if err := aux.Stop(shutdownCtx); err != nil {
			log.Printf("Error stopping auxiliary service: %v", err)
		}
	}

	if healthServer != nil {
		healthServer.Stop(shutdownCtx)
	}

	select {
	case <-serviceDone:
	case <-shutdownCtx.Done():
		log.Printf("Service %s did not exit within %v", opts.ServiceName, ShutdownTimeout)
	}

	log.Printf("*** Service %s stopped", opts.ServiceName)

	return runErr
}
