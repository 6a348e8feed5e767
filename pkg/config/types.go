package config

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const (
	DefaultConfigPath    = "/etc/camrelay/relay.json"
	DefaultPort          = 8080
	DefaultDevicePath    = "/dev/video99"
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultFrameInterval = 33333 * time.Microsecond // ~30 FPS
	DefaultSessionRetain = 100

	maxPort = 65535
)

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// RelayConfig represents the configuration for a relay instance.
type RelayConfig struct {
	Port          int      `json:"port"`           // e.g., 8080
	DevicePath    string   `json:"device_path"`    // e.g., /dev/video99
	Width         int      `json:"width"`          // e.g., 1280
	Height        int      `json:"height"`         // e.g., 720
	FrameInterval Duration `json:"frame_interval"` // pause after each sent frame
	HealthAddr    string   `json:"health_addr,omitempty"`
	APIAddr       string   `json:"api_addr,omitempty"`
	SessionRetain int      `json:"session_retain,omitempty"` // finished sessions kept for the status API
}

// Default returns the fixed configuration the relay runs with when no file is present.
func Default() *RelayConfig {
	return &RelayConfig{
		Port:          DefaultPort,
		DevicePath:    DefaultDevicePath,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		FrameInterval: Duration(DefaultFrameInterval),
		SessionRetain: DefaultSessionRetain,
	}
}

// Validate implements Validator.
func (c *RelayConfig) Validate() error {
	if c.Port < 1 || c.Port > maxPort {
		return fmt.Errorf("%w: %d", errInvalidPort, c.Port)
	}

	if c.DevicePath == "" {
		return errDevicePathRequired
	}

	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", errInvalidResolution, c.Width, c.Height)
	}

	if c.FrameInterval < 0 {
		return fmt.Errorf("%w: %v", errInvalidDuration, time.Duration(c.FrameInterval))
	}

	if c.SessionRetain < 0 {
		return fmt.Errorf("%w: %d", errInvalidRetention, c.SessionRetain)
	}

	for _, addr := range []string{c.HealthAddr, c.APIAddr} {
		if addr == "" {
			continue
		}

		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("%w '%s': %w", errInvalidAddr, addr, err)
		}
	}

	return nil
}

// ListenAddr returns the relay listen address on all interfaces.
func (c *RelayConfig) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}
