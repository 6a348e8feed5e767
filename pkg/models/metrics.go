// Package models pkg/models/metrics.go
package models

import "time"

// CloseReason describes why a relay session ended.
type CloseReason string

const (
	ReasonNone              CloseReason = ""
	ReasonNegotiationFailed CloseReason = "negotiation_failed"
	ReasonReadFailed        CloseReason = "read_failed"
	ReasonWriteFailed       CloseReason = "write_failed"
	ReasonCanceled          CloseReason = "canceled"
)

// SessionRecord is the summary of one client session.
type SessionRecord struct {
	RemoteAddr string        `json:"remote_addr"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    time.Time     `json:"ended_at"`
	Frames     int64         `json:"frames"`
	Bytes      int64         `json:"bytes"`
	Reason     CloseReason   `json:"reason"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

type MetricsConfig struct {
	Enabled   bool `json:"metrics_enabled"`
	Retention int  `json:"metrics_retention"`
}
