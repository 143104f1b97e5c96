package pps

import (
	"context"
	"errors"
	"io"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

type fakeLine struct {
	closed atomic.Bool
}

func (f *fakeLine) Close() error {
	f.closed.Store(true)
	return nil
}

func newTestMonitor(t *testing.T) (*Monitor, *func(time.Time, time.Duration), *fakeLine, *time.Time) {
	t.Helper()
	m := New(Config{Enable: true, Line: 18})
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	var pulse func(time.Time, time.Duration)
	line := &fakeLine{}
	m.open = func(chip string, offset int, onPulse func(time.Time, time.Duration)) (io.Closer, error) {
		if chip != "gpiochip0" || offset != 18 {
			t.Fatalf("open chip=%q offset=%d", chip, offset)
		}
		pulse = onPulse
		return line, nil
	}
	return m, &pulse, line, &now
}

func TestMonitor_CountsPulsesAndLocks(t *testing.T) {
	m, pulse, _, now := newTestMonitor(t)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer m.Close()

	base := 100 * time.Second
	(*pulse)(*now, base)
	snap := m.Snapshot()
	if snap.Pulses != 1 || snap.Locked || snap.IntervalSec != 0 {
		t.Fatalf("after first pulse: %+v", snap)
	}

	*now = now.Add(time.Second)
	(*pulse)(*now, base+time.Second+20*time.Microsecond)
	snap = m.Snapshot()
	if snap.Pulses != 2 || !snap.Locked {
		t.Fatalf("after second pulse: %+v", snap)
	}
	if math.Abs(snap.IntervalSec-1.00002) > 1e-9 {
		t.Fatalf("interval=%v", snap.IntervalSec)
	}
	if snap.JitterUS != 20 {
		t.Fatalf("jitter_us=%v", snap.JitterUS)
	}
	if snap.LastPulseUTC != "2025-03-01T00:00:01Z" {
		t.Fatalf("last_pulse_utc=%q", snap.LastPulseUTC)
	}

	*now = now.Add(3 * time.Second)
	if m.Snapshot().Locked {
		t.Fatalf("expected lock lost after missed pulses")
	}
}

func TestMonitor_IrregularIntervalNotLocked(t *testing.T) {
	m, pulse, _, now := newTestMonitor(t)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	(*pulse)(*now, 0)
	(*pulse)(*now, 700*time.Millisecond)
	if m.Snapshot().Locked {
		t.Fatalf("700ms interval must not lock")
	}
}

func TestMonitor_StartFailureRecorded(t *testing.T) {
	m := New(Config{Enable: true})
	m.open = func(string, int, func(time.Time, time.Duration)) (io.Closer, error) {
		return nil, errors.New("device busy")
	}
	if err := m.Start(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if got := m.Snapshot().LastError; got != "device busy" {
		t.Fatalf("last_error=%q", got)
	}
}

func TestMonitor_DisabledNoop(t *testing.T) {
	m := New(Config{})
	m.open = func(string, int, func(time.Time, time.Duration)) (io.Closer, error) {
		t.Fatalf("open must not be called")
		return nil, nil
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
}

func TestMonitor_ContextCancelCloses(t *testing.T) {
	m, _, line, _ := newTestMonitor(t)
	ctx, cancel := context.WithCancel(context.Background())
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for !line.closed.Load() {
		if time.Now().After(deadline) {
			t.Fatalf("line not closed after cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
