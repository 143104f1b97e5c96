package udp

import (
	"fmt"
	"net"
	"sync"
)

type udpConn interface {
	Write(p []byte) (int, error)
	Close() error
}

type (
	resolveFunc func(network, address string) (*net.UDPAddr, error)
	dialFunc    func(network string, laddr, raddr *net.UDPAddr) (udpConn, error)
)

// Forwarder sends one datagram per NMEA sentence, CRLF terminated, to a
// single destination (unicast or broadcast). It is safe for concurrent use.
type Forwarder struct {
	dest string
	conn udpConn

	mu      sync.Mutex
	sent    uint64
	failed  uint64
	lastErr string
}

type Snapshot struct {
	Dest      string `json:"dest"`
	Sent      uint64 `json:"sent"`
	Failed    uint64 `json:"failed"`
	LastError string `json:"last_error,omitempty"`
}

func NewForwarder(dest string) (*Forwarder, error) {
	return newForwarder(dest, net.ResolveUDPAddr, func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return net.DialUDP(network, laddr, raddr)
	})
}

func newForwarder(dest string, resolve resolveFunc, dial dialFunc) (*Forwarder, error) {
	addr, err := resolve("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve dest: %w", err)
	}

	// DialUDP selects a suitable local address automatically.
	conn, err := dial("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp: %w", err)
	}

	return &Forwarder{dest: dest, conn: conn}, nil
}

// Forward writes sentence with a CRLF terminator, adding one if missing.
func (f *Forwarder) Forward(sentence []byte) error {
	if len(sentence) == 0 {
		return nil
	}
	n := len(sentence)
	for n > 0 && (sentence[n-1] == '\r' || sentence[n-1] == '\n') {
		n--
	}
	payload := make([]byte, 0, n+2)
	payload = append(payload, sentence[:n]...)
	payload = append(payload, '\r', '\n')

	_, err := f.conn.Write(payload)

	f.mu.Lock()
	if err != nil {
		f.failed++
		f.lastErr = err.Error()
	} else {
		f.sent++
	}
	f.mu.Unlock()
	return err
}

func (f *Forwarder) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{Dest: f.dest, Sent: f.sent, Failed: f.failed, LastError: f.lastErr}
}

func (f *Forwarder) Close() error {
	if f.conn == nil {
		return nil
	}
	return f.conn.Close()
}
