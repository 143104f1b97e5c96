package web

import (
	"sort"
	"sync"
	"time"
)

// Status assembles /api/status from snapshot providers registered by the
// runtime, one per component (gps, pps, udp, mqtt, recorder).
type Status struct {
	start time.Time

	mu        sync.RWMutex
	providers map[string]func() any
}

func NewStatus() *Status {
	return &Status{start: time.Now().UTC(), providers: map[string]func() any{}}
}

// Provide registers fn under name, replacing any earlier provider.
func (s *Status) Provide(name string, fn func() any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		delete(s.providers, name)
		return
	}
	s.providers[name] = fn
}

type StatusSnapshot struct {
	Service    string         `json:"service"`
	NowUTC     string         `json:"now_utc"`
	UptimeSec  int64          `json:"uptime_sec"`
	Components []string       `json:"components"`
	Status     map[string]any `json:"status"`
}

func (s *Status) Snapshot(nowUTC time.Time) StatusSnapshot {
	if nowUTC.IsZero() {
		nowUTC = time.Now().UTC()
	}

	s.mu.RLock()
	providers := make(map[string]func() any, len(s.providers))
	for k, v := range s.providers {
		providers[k] = v
	}
	s.mu.RUnlock()

	snap := StatusSnapshot{
		Service:    "nmea-ng",
		NowUTC:     nowUTC.UTC().Format(time.RFC3339Nano),
		UptimeSec:  int64(nowUTC.Sub(s.start).Seconds()),
		Components: make([]string, 0, len(providers)),
		Status:     make(map[string]any, len(providers)),
	}
	// Providers run outside the lock; they take their own component locks.
	for name, fn := range providers {
		snap.Components = append(snap.Components, name)
		snap.Status[name] = fn()
	}
	sort.Strings(snap.Components)
	return snap
}
