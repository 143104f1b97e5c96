package gps

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

type LineClientConfig struct {
	Name string
	Addr string

	// Hello is written once after each successful connect (gpsd ?WATCH).
	Hello []byte

	ReconnectDelay time.Duration
	MaxLineBytes   int

	// DialTimeout is used for the initial TCP connect.
	DialTimeout time.Duration
}

// LineClient reads newline-delimited text from a TCP endpoint and reconnects
// after failures until its context is cancelled.
type LineClient struct {
	cfg LineClientConfig

	started atomic.Bool
	closed  atomic.Bool

	mu       sync.RWMutex
	state    string
	lastErr  string
	lastSeen time.Time
	count    uint64

	cancel context.CancelFunc
	done   chan struct{}
}

type LineSnapshot struct {
	Name        string `json:"name"`
	Addr        string `json:"addr"`
	State       string `json:"state"`
	LastError   string `json:"last_error,omitempty"`
	LastSeenUTC string `json:"last_seen_utc,omitempty"`
	Lines       uint64 `json:"lines"`
}

func NewLineClient(cfg LineClientConfig) (*LineClient, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("line client name is required")
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("line client addr is required")
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 1 * time.Second
	}
	if cfg.MaxLineBytes <= 0 {
		// gpsd interleaves JSON reports that are far longer than any sentence.
		cfg.MaxLineBytes = 64 * 1024
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 2 * time.Second
	}

	return &LineClient{cfg: cfg, state: "stopped", done: make(chan struct{})}, nil
}

// Start connects to the configured endpoint and calls onLine with a copy of
// every trimmed, non-empty line. onLine should be fast.
func (c *LineClient) Start(ctx context.Context, onLine func(line []byte) error) error {
	if c == nil {
		return fmt.Errorf("line client is nil")
	}
	if c.closed.Load() {
		return fmt.Errorf("line client is closed")
	}
	if onLine == nil {
		return fmt.Errorf("line onLine is nil")
	}
	if c.started.Swap(true) {
		return fmt.Errorf("line client already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.setState("connecting", "")

	go func() {
		defer close(c.done)
		c.runLoop(runCtx, onLine)
	}()
	return nil
}

func (c *LineClient) Close() {
	if c == nil {
		return
	}
	if c.closed.Swap(true) {
		return
	}
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
}

func (c *LineClient) Snapshot() LineSnapshot {
	if c == nil {
		return LineSnapshot{}
	}
	c.mu.RLock()
	state := c.state
	lastErr := c.lastErr
	lastSeen := c.lastSeen
	count := c.count
	c.mu.RUnlock()

	out := LineSnapshot{
		Name:      c.cfg.Name,
		Addr:      c.cfg.Addr,
		State:     state,
		LastError: lastErr,
		Lines:     count,
	}
	if !lastSeen.IsZero() {
		out.LastSeenUTC = lastSeen.UTC().Format(time.RFC3339Nano)
	}
	return out
}

func (c *LineClient) runLoop(ctx context.Context, onLine func(line []byte) error) {
	dialer := &net.Dialer{Timeout: c.cfg.DialTimeout}

	for {
		select {
		case <-ctx.Done():
			c.setState("stopped", "")
			return
		default:
		}

		c.setState("connecting", "")
		conn, err := dialer.DialContext(ctx, "tcp", c.cfg.Addr)
		if err != nil {
			c.setState("error", err.Error())
			if !sleepCtx(ctx, c.cfg.ReconnectDelay) {
				c.setState("stopped", "")
				return
			}
			continue
		}

		if len(c.cfg.Hello) > 0 {
			if _, err := conn.Write(c.cfg.Hello); err != nil {
				_ = conn.Close()
				c.setState("error", "hello: "+err.Error())
				if !sleepCtx(ctx, c.cfg.ReconnectDelay) {
					c.setState("stopped", "")
					return
				}
				continue
			}
		}

		c.setState("connected", "")
		c.readLines(ctx, conn, onLine)

		if !sleepCtx(ctx, c.cfg.ReconnectDelay) {
			c.setState("stopped", "")
			return
		}
	}
}

func (c *LineClient) readLines(ctx context.Context, conn net.Conn, onLine func(line []byte) error) {
	// Unblock the pending read once the context ends.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				c.setState("disconnected", "")
			} else {
				c.setState("disconnected", err.Error())
			}
			return
		}
		if len(line) > c.cfg.MaxLineBytes {
			c.setState("error", fmt.Sprintf("line too large (%d bytes)", len(line)))
			continue
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		raw := append([]byte(nil), line...)
		if err := onLine(raw); err != nil {
			c.setState("error", "handler: "+err.Error())
			continue
		}

		now := time.Now().UTC()
		c.mu.Lock()
		c.lastSeen = now
		c.count++
		c.mu.Unlock()
	}
}

func (c *LineClient) setState(state string, lastErr string) {
	c.mu.Lock()
	c.state = state
	if lastErr != "" {
		c.lastErr = lastErr
	} else if state == "connected" || state == "connecting" || state == "stopped" {
		// Clear stale errors so status output doesn't look broken after a
		// transient startup failure.
		c.lastErr = ""
	}
	c.mu.Unlock()
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
