package udp

import (
	"errors"
	"net"
	"testing"
)

type fakeConn struct {
	writes    [][]byte
	writeErr  error
	closed    bool
	closeErr  error
	writeHits int
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.writeHits++
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	cp := append([]byte(nil), p...)
	c.writes = append(c.writes, cp)
	return len(p), nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return c.closeErr
}

func TestNewForwarder_DialsResolvedAddr(t *testing.T) {
	var gotNetwork string
	var gotRaddr *net.UDPAddr
	fc := &fakeConn{}

	resolve := func(network, address string) (*net.UDPAddr, error) {
		return net.ResolveUDPAddr(network, address)
	}

	dial := func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		gotNetwork = network
		gotRaddr = raddr
		return fc, nil
	}

	f, err := newForwarder("127.0.0.1:10110", resolve, dial)
	if err != nil {
		t.Fatalf("newForwarder() error: %v", err)
	}
	defer f.Close()

	if gotNetwork != "udp" {
		t.Fatalf("network=%q want %q", gotNetwork, "udp")
	}
	if gotRaddr == nil || gotRaddr.Port != 10110 || !gotRaddr.IP.Equal(net.IPv4(127, 0, 0, 1)) {
		t.Fatalf("raddr=%v want 127.0.0.1:10110", gotRaddr)
	}
}

func TestNewForwarder_ResolveFailure(t *testing.T) {
	resolveErr := errors.New("nope")
	resolve := func(network, address string) (*net.UDPAddr, error) {
		return nil, resolveErr
	}
	dial := func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return &fakeConn{}, nil
	}

	_, err := newForwarder("bad:addr", resolve, dial)
	if !errors.Is(err, resolveErr) {
		t.Fatalf("err=%v want %v", err, resolveErr)
	}
}

func TestNewForwarder_DialFailure(t *testing.T) {
	dialErr := errors.New("unreachable")
	resolve := func(network, address string) (*net.UDPAddr, error) {
		return net.ResolveUDPAddr(network, address)
	}
	dial := func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return nil, dialErr
	}

	_, err := newForwarder("127.0.0.1:10110", resolve, dial)
	if !errors.Is(err, dialErr) {
		t.Fatalf("err=%v want %v", err, dialErr)
	}
}

func TestForwarder_Forward_EmptyNoWrite(t *testing.T) {
	fc := &fakeConn{}
	f := &Forwarder{dest: "x", conn: fc}

	if err := f.Forward(nil); err != nil {
		t.Fatalf("Forward(nil) error: %v", err)
	}
	if fc.writeHits != 0 {
		t.Fatalf("expected no writes, got %d", fc.writeHits)
	}
}

func TestForwarder_Forward_NormalizesTerminator(t *testing.T) {
	fc := &fakeConn{}
	f := &Forwarder{dest: "x", conn: fc}

	for _, in := range []string{"$GPHDT,123.45,T*04", "$GPHDT,123.45,T*04\n", "$GPHDT,123.45,T*04\r\n"} {
		if err := f.Forward([]byte(in)); err != nil {
			t.Fatalf("Forward(%q) error: %v", in, err)
		}
	}
	if len(fc.writes) != 3 {
		t.Fatalf("expected 3 writes, got %d", len(fc.writes))
	}
	for i, w := range fc.writes {
		if string(w) != "$GPHDT,123.45,T*04\r\n" {
			t.Fatalf("write[%d]=%q", i, w)
		}
	}
	if snap := f.Snapshot(); snap.Sent != 3 || snap.Failed != 0 {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestForwarder_Forward_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	fc := &fakeConn{writeErr: wantErr}
	f := &Forwarder{dest: "x", conn: fc}

	err := f.Forward([]byte("$x"))
	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v want %v", err, wantErr)
	}
	snap := f.Snapshot()
	if snap.Failed != 1 || snap.LastError != "boom" {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestForwarder_Close_NilConnNoPanic(t *testing.T) {
	f := &Forwarder{}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

func TestForwarder_RealSocket(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen udp: %v", err)
	}
	defer pc.Close()

	f, err := NewForwarder(pc.LocalAddr().String())
	if err != nil {
		t.Fatalf("NewForwarder() error: %v", err)
	}
	defer f.Close()

	if err := f.Forward([]byte("$GPHDT,123.45,T*04")); err != nil {
		t.Fatalf("Forward() error: %v", err)
	}
	buf := make([]byte, 128)
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("ReadFrom() error: %v", err)
	}
	if string(buf[:n]) != "$GPHDT,123.45,T*04\r\n" {
		t.Fatalf("got %q", buf[:n])
	}
}
