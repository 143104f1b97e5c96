// Package pps watches a GPIO line for the receiver's pulse-per-second output.
package pps

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Enable bool
	// Chip is a gpiochip name or path, e.g. "gpiochip0".
	Chip string
	Line int
}

type Snapshot struct {
	Enabled      bool    `json:"enabled"`
	Chip         string  `json:"chip,omitempty"`
	Line         int     `json:"line"`
	Pulses       uint64  `json:"pulses"`
	LastPulseUTC string  `json:"last_pulse_utc,omitempty"`
	IntervalSec  float64 `json:"interval_sec,omitempty"`
	JitterUS     float64 `json:"jitter_us,omitempty"`
	Locked       bool    `json:"locked"`
	LastError    string  `json:"last_error,omitempty"`
}

// lockTolerance is how far an interval may stray from one second and still
// count as a steady pulse train.
const lockTolerance = 5 * time.Millisecond

// openFunc requests rising-edge events on a line. onPulse receives the wall
// clock time and the kernel event timestamp.
type openFunc func(chip string, offset int, onPulse func(at time.Time, ts time.Duration)) (io.Closer, error)

type Monitor struct {
	cfg  Config
	open openFunc
	now  func() time.Time

	mu      sync.Mutex
	closer  io.Closer
	pulses  uint64
	last    time.Time
	lastTS  time.Duration
	haveTS  bool
	period  time.Duration
	jitter  time.Duration
	locked  bool
	lastErr string
}

func New(cfg Config) *Monitor {
	if strings.TrimSpace(cfg.Chip) == "" {
		cfg.Chip = "gpiochip0"
	}
	return &Monitor{cfg: cfg, open: openEdgeLine, now: func() time.Time { return time.Now().UTC() }}
}

// Start requests the line. Pulses arrive on the gpio event goroutine until
// ctx ends or Close is called.
func (m *Monitor) Start(ctx context.Context) error {
	if m == nil {
		return fmt.Errorf("pps monitor is nil")
	}
	if !m.cfg.Enable {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closer != nil {
		return nil
	}

	c, err := m.open(m.cfg.Chip, m.cfg.Line, m.recordPulse)
	if err != nil {
		m.lastErr = err.Error()
		return fmt.Errorf("pps request chip=%s line=%d: %w", m.cfg.Chip, m.cfg.Line, err)
	}
	m.closer = c
	log.Printf("pps enabled chip=%s line=%d", m.cfg.Chip, m.cfg.Line)

	go func() {
		<-ctx.Done()
		m.Close()
	}()
	return nil
}

func (m *Monitor) recordPulse(at time.Time, ts time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pulses++
	m.last = at
	if m.haveTS {
		m.period = ts - m.lastTS
		dev := m.period - time.Second
		if dev < 0 {
			dev = -dev
		}
		m.jitter = dev
		m.locked = dev <= lockTolerance
	}
	m.lastTS = ts
	m.haveTS = true
}

func (m *Monitor) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := Snapshot{
		Enabled:   m.cfg.Enable,
		Chip:      m.cfg.Chip,
		Line:      m.cfg.Line,
		Pulses:    m.pulses,
		LastError: m.lastErr,
	}
	if !m.last.IsZero() {
		out.LastPulseUTC = m.last.Format(time.RFC3339Nano)
		// Two missed pulses drop the lock.
		out.Locked = m.locked && m.now().Sub(m.last) < 2*time.Second
	}
	if m.period > 0 {
		out.IntervalSec = m.period.Seconds()
		out.JitterUS = math.Round(float64(m.jitter) / float64(time.Microsecond))
	}
	return out
}

func (m *Monitor) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	c := m.closer
	m.closer = nil
	m.mu.Unlock()
	if c != nil {
		_ = c.Close()
	}
}
