package inspector

import (
	"sync"
	"time"
)

// QueryStats is a running count and mean duration for one intent type.
type QueryStats struct {
	Count int64
	Avg   time.Duration
}

// Metrics tracks how many queries of each type were served and how long
// they took.
type Metrics struct {
	mu        sync.Mutex
	stats     map[string]QueryStats
	startTime time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{stats: make(map[string]QueryStats), startTime: time.Now()}
}

func (m *Metrics) Track(intent string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats[intent]
	s.Count++
	s.Avg = (s.Avg*time.Duration(s.Count-1) + d) / time.Duration(s.Count)
	m.stats[intent] = s
}

// Snapshot copies the current stats.
func (m *Metrics) Snapshot() map[string]QueryStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]QueryStats, len(m.stats))
	for k, v := range m.stats {
		out[k] = v
	}
	return out
}

func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
