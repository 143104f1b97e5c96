package main

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nmea-ng/internal/config"
	"nmea-ng/internal/mqttpub"
	"nmea-ng/internal/replay"
	"nmea-ng/internal/web"
)

func TestGateway_SinksRecordAndForwardVerifiedLines(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen udp: %v", err)
	}
	defer pc.Close()

	recordPath := filepath.Join(t.TempDir(), "capture.log")
	cfg := config.Config{
		Record: config.RecordConfig{Enable: true, Path: recordPath},
		UDP:    config.UDPConfig{Enable: true, Dest: pc.LocalAddr().String()},
		Web:    config.WebConfig{Listen: "127.0.0.1:0"},
	}
	gw, err := newGateway(cfg, web.NewLogBuffer(10))
	if err != nil {
		t.Fatalf("newGateway() error: %v", err)
	}

	bad := nmeaLine("GPHDT,123.45,T")
	bad = bad[:len(bad)-2] + "00"
	now := time.Now().UTC()
	for _, line := range []string{
		nmeaLine("GPHDT,123.45,T"),
		bad,
		nmeaLine("GPZDA,201530.00,04,07,2002,00,00"),
	} {
		gw.gpsSvc.HandleLine(now, []byte(line))
	}

	buf := make([]byte, 256)
	_ = pc.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got []string
	for i := 0; i < 2; i++ {
		n, _, err := pc.ReadFrom(buf)
		if err != nil {
			t.Fatalf("ReadFrom() error: %v", err)
		}
		got = append(got, string(buf[:n]))
	}
	if got[0] != nmeaLine("GPHDT,123.45,T")+"\r\n" || got[1] != nmeaLine("GPZDA,201530.00,04,07,2002,00,00")+"\r\n" {
		t.Fatalf("udp=%q", got)
	}

	gw.Close()
	recs, err := replay.ReadFile(recordPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	// START marker plus the two verified sentences.
	if len(recs) != 3 || recs[0].Sentence != nil {
		t.Fatalf("records=%d", len(recs))
	}
	if string(recs[2].Sentence) != nmeaLine("GPZDA,201530.00,04,07,2002,00,00") {
		t.Fatalf("record[2]=%q", recs[2].Sentence)
	}
}

func TestGateway_HandlerServesStatusAndMetrics(t *testing.T) {
	gw, err := newGateway(config.Config{}, web.NewLogBuffer(10))
	if err != nil {
		t.Fatalf("newGateway() error: %v", err)
	}
	defer gw.Close()

	gw.gpsSvc.HandleLine(time.Now().UTC(), []byte(nmeaLine("GPHDT,123.45,T")))

	ts := httptest.NewServer(gw.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{"nmea_lines_total 1", `nmea_sentences_total{type="HDT"} 1`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}

	resp, err = http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{`"gps"`, `"pps"`, `"stream"`, `"HDT": 1`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("status missing %q:\n%s", want, body)
		}
	}
}

func TestGateway_MQTTConnectFailureCleansUp(t *testing.T) {
	old := connectMQTT
	t.Cleanup(func() { connectMQTT = old })
	connectMQTT = func(mqttpub.Config) (*mqttpub.Publisher, error) {
		return nil, os.ErrDeadlineExceeded
	}

	recordPath := filepath.Join(t.TempDir(), "capture.log")
	cfg := config.Config{
		Record: config.RecordConfig{Enable: true, Path: recordPath},
		MQTT:   config.MQTTConfig{Enable: true, Broker: "tcp://127.0.0.1:1"},
	}
	if _, err := newGateway(cfg, nil); err == nil {
		t.Fatalf("expected error")
	}
	// The recorder was closed, so the START marker was flushed.
	b, err := os.ReadFile(recordPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(b) != "START\n" {
		t.Fatalf("capture=%q", b)
	}
}
