package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	perKey map[string]*KeyMetrics

	totalDispatches uint64
	totalRejected   uint64
	totalDuration   time.Duration
}

// KeyMetrics holds metrics for a specific key.
type KeyMetrics struct {
	Name          string
	DispatchCount uint64
	NoOpCount     uint64
	TotalDuration time.Duration
	LastStatus    Status
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{perKey: make(map[string]*KeyMetrics)}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(name string, duration time.Duration, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration
	if status == StatusRejected {
		m.totalRejected++
	}

	km := m.perKey[name]
	if km == nil {
		km = &KeyMetrics{Name: name}
		m.perKey[name] = km
	}
	km.DispatchCount++
	km.TotalDuration += duration
	km.LastStatus = status
	if status == StatusNoOp {
		km.NoOpCount++
	}
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	TotalDispatches uint64
	TotalRejected   uint64
	TotalDuration   time.Duration
	Keys            []KeyMetrics // most dispatched first
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		TotalDispatches: m.totalDispatches,
		TotalRejected:   m.totalRejected,
		TotalDuration:   m.totalDuration,
		Keys:            make([]KeyMetrics, 0, len(m.perKey)),
	}
	for _, km := range m.perKey {
		s.Keys = append(s.Keys, *km)
	}
	sort.Slice(s.Keys, func(i, j int) bool {
		if s.Keys[i].DispatchCount != s.Keys[j].DispatchCount {
			return s.Keys[i].DispatchCount > s.Keys[j].DispatchCount
		}
		return s.Keys[i].Name < s.Keys[j].Name
	})
	return s
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.perKey = make(map[string]*KeyMetrics)
	m.totalDispatches = 0
	m.totalRejected = 0
	m.totalDuration = 0
}
