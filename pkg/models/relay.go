package models

import "time"

// DeviceInfo describes the configured capture device.
type DeviceInfo struct {
	Path        string `json:"path"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	PixelFormat string `json:"pixel_format"`
	FrameSize   int    `json:"frame_size"`
}

// RelayStatus is a point-in-time view of the relay.
type RelayStatus struct {
	Device        DeviceInfo `json:"device"`
	ListenAddr    string     `json:"listen_addr"`
	Streaming     bool       `json:"streaming"`
	CurrentClient string     `json:"current_client,omitempty"`
	ClientSince   time.Time  `json:"client_since,omitempty"`
	TotalSessions int64      `json:"total_sessions"`
	TotalFrames   int64      `json:"total_frames"`
	TotalBytes    int64      `json:"total_bytes"`
	AcceptErrors  int64      `json:"accept_errors"`
	StartedAt     time.Time  `json:"started_at"`
	UpTime        string     `json:"uptime"`
}
