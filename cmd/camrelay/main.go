// cmd/camrelay/main.go
package main

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/mfreeman451/camrelay/pkg/acceptor"
	"github.com/mfreeman451/camrelay/pkg/api"
	"github.com/mfreeman451/camrelay/pkg/capture"
	"github.com/mfreeman451/camrelay/pkg/config"
	"github.com/mfreeman451/camrelay/pkg/lifecycle"
	"github.com/mfreeman451/camrelay/pkg/metrics"
	"github.com/mfreeman451/camrelay/pkg/models"
	"github.com/mfreeman451/camrelay/pkg/relay"
)

const serviceName = "camrelay.Relay"

// device is the configured capture handle the relay reads from.
type device interface {
	capture.Source
	Path() string
	Info() models.DeviceInfo
	Close() error
}

// runner holds the startup steps in the order they run.
type runner struct {
	loadConfig func(path string) (*config.RelayConfig, error)
	openDevice func(cfg *config.RelayConfig) (device, error)
	listen     func(port int) (net.Listener, error)
	serve      func(ctx context.Context, opts *lifecycle.ServerOptions) error
}

func newRunner() *runner {
	return &runner{
		loadConfig: config.LoadRelayConfig,
		openDevice: func(cfg *config.RelayConfig) (device, error) {
			dev, err := capture.Configure(cfg.DevicePath, cfg.Width, cfg.Height, capture.PixelFormatMJPEG)
			if err != nil {
				return nil, err
			}

			return dev, nil
		},
		listen: func(port int) (net.Listener, error) {
			l, err := acceptor.Listen(port)
			if err != nil {
				return nil, err
			}

			return l, nil
		},
		serve: lifecycle.RunServer,
	}
}

func main() {
	log.Printf("Starting camrelay...")

	if err := newRunner().run(context.Background(), config.DefaultConfigPath); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

// run configures the device once and binds the port once, then serves until
// shutdown. The device is closed on every return path.
func (r *runner) run(ctx context.Context, configPath string) error {
	cfg, err := r.loadConfig(configPath)
	if err != nil {
		return err
	}

	dev, err := r.openDevice(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if err := dev.Close(); err != nil {
			log.Printf("Error closing capture device: %v", err)
		}
	}()

	listener, err := r.listen(cfg.Port)
	if err != nil {
		return err
	}

	log.Printf("Relaying %s on %s", dev.Path(), cfg.ListenAddr())

	collector := metrics.NewManager(models.MetricsConfig{
		Enabled:   cfg.SessionRetain > 0,
		Retention: cfg.SessionRetain,
	})

	server := relay.NewServer(listener, dev,
		relay.WithFrameInterval(time.Duration(cfg.FrameInterval)),
		relay.WithCollector(collector),
		relay.WithDeviceInfo(dev.Info()),
	)

	opts := &lifecycle.ServerOptions{
		ServiceName: serviceName,
		Service:     server,
		HealthAddr:  cfg.HealthAddr,
	}

	if cfg.APIAddr != "" {
		opts.Auxiliary = append(opts.Auxiliary, api.NewAPIServer(cfg.APIAddr, server))
	}

	return r.serve(ctx, opts)
}
