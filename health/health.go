package health

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hollowthesilver/asynclogger/core"
)

// RingCapacity is the fixed capacity of the failure ring.
const RingCapacity = 100

// Metrics tracks pipeline usage counters.
type Metrics struct {
	totalMessages atomic.Uint64
	errorCount    atomic.Uint64
	lastErrorNano atomic.Int64
}

// RecordMessage increments the processed-events counter.
func (m *Metrics) RecordMessage() {
	m.totalMessages.Add(1)
}

// RecordError increments the failure counter and stamps the failure time.
func (m *Metrics) RecordError() {
	m.errorCount.Add(1)
	m.lastErrorNano.Store(time.Now().UnixNano())
}

// TotalMessages returns the processed-events count.
func (m *Metrics) TotalMessages() uint64 {
	return m.totalMessages.Load()
}

// ErrorCount returns the failure count.
func (m *Metrics) ErrorCount() uint64 {
	return m.errorCount.Load()
}

// LastErrorTime returns the time of the most recent failure, or nil if
// none has occurred.
func (m *Metrics) LastErrorTime() *time.Time {
	nano := m.lastErrorNano.Load()
	if nano == 0 {
		return nil
	}
	t := time.Unix(0, nano)
	return &t
}

// FailedEntry records one event the pipeline could not process.
type FailedEntry struct {
	Time    time.Time
	Level   core.Level
	Message string
	Error   string
}

// FailureRing is a fixed-capacity ring of FailedEntry records. Once
// full, each append silently drops the oldest entry.
type FailureRing struct {
	mu      sync.Mutex
	entries []FailedEntry
	start   int
	count   int
}

// NewFailureRing creates a ring with RingCapacity slots.
func NewFailureRing() *FailureRing {
	return &FailureRing{entries: make([]FailedEntry, RingCapacity)}
}

// Append adds an entry, evicting the oldest when full.
func (r *FailureRing) Append(e FailedEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count < len(r.entries) {
		r.entries[(r.start+r.count)%len(r.entries)] = e
		r.count++
		return
	}
	r.entries[r.start] = e
	r.start = (r.start + 1) % len(r.entries)
}

// Len returns the current occupancy.
func (r *FailureRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// List returns the entries oldest-first as a copy.
func (r *FailureRing) List() []FailedEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FailedEntry, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.start+i)%len(r.entries)]
	}
	return out
}

// Snapshot is a point-in-time view of pipeline health.
type Snapshot struct {
	TotalMessages   uint64
	ErrorCount      uint64
	LastErrorTime   *time.Time
	BatchSize       int
	TimeSinceFlush  time.Duration
	FailedLogCount  int
	ExtrasCacheSize int
}
