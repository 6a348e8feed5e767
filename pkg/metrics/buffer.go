package metrics

import (
	"sync"

	"github.com/mfreeman451/camrelay/pkg/models"
)

// RingBuffer is a fixed-size ring of session records. Once full, the oldest
// record is overwritten.
type RingBuffer struct {
	mu      sync.RWMutex
	records []models.SessionRecord
	pos     int
	count   int
}

// NewBuffer creates a SessionStore holding up to size records.
func NewBuffer(size int) SessionStore {
	if size < 0 {
		size = 0
	}

	return &RingBuffer{
		records: make([]models.SessionRecord, size),
	}
}

// Add stores a record, evicting the oldest when the buffer is full.
func (b *RingBuffer) Add(record models.SessionRecord) {
	if len(b.records) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.records[b.pos] = record
	b.pos = (b.pos + 1) % len(b.records)

	if b.count < len(b.records) {
		b.count++
	}
}

// GetRecords returns the stored records, newest first.
func (b *RingBuffer) GetRecords() []models.SessionRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	size := len(b.records)
	out := make([]models.SessionRecord, 0, b.count)

	for i := 0; i < b.count; i++ {
		idx := (b.pos - i - 1 + size) % size
		out = append(out, b.records[idx])
	}

	return out
}

// GetLastRecord returns the newest record or nil when empty.
func (b *RingBuffer) GetLastRecord() *models.SessionRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	size := len(b.records)
	last := b.records[(b.pos-1+size)%size]

	return &last
}
