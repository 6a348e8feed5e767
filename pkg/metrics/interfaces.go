package metrics

import (
	"time"

	"github.com/mfreeman451/camrelay/pkg/models"
)

// SessionStore keeps the most recent finished sessions.
type SessionStore interface {
	Add(record models.SessionRecord)
	GetRecords() []models.SessionRecord
	GetLastRecord() *models.SessionRecord
}

// RelayCollector receives relay events from the accept loop.
type RelayCollector interface {
	SessionStarted(remoteAddr string, at time.Time)
	FrameSent(payloadBytes int)
	SessionEnded(record models.SessionRecord)
	AcceptFailed()
	Totals() Totals
	Sessions() []models.SessionRecord
	LatestSession() *models.SessionRecord
}
