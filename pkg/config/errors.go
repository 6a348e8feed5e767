package config

import "errors"

var (
	errInvalidDuration    = errors.New("invalid duration")
	errInvalidPort        = errors.New("invalid port")
	errDevicePathRequired = errors.New("device_path is required")
	errInvalidResolution  = errors.New("invalid resolution")
	errInvalidRetention   = errors.New("invalid session_retain")
	errInvalidAddr        = errors.New("invalid address")
)
