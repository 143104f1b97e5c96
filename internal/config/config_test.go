package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTempConfig(t, "gps:\n  enable: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GPS.Source != "nmea" || cfg.GPS.Baud != 9600 {
		t.Fatalf("gps=%+v", cfg.GPS)
	}
	if cfg.GPS.GPSDAddr != "127.0.0.1:2947" || cfg.GPS.PPS.Chip != "gpiochip0" {
		t.Fatalf("gps=%+v", cfg.GPS)
	}
	if cfg.Replay.Speed != 1 {
		t.Fatalf("replay.speed=%v want 1", cfg.Replay.Speed)
	}
	if cfg.MQTT.ClientID != "nmea-ng" || cfg.MQTT.TopicPrefix != "nmea" {
		t.Fatalf("mqtt=%+v", cfg.MQTT)
	}
	if cfg.Web.Listen != ":8080" || cfg.Web.LogLines != 2000 {
		t.Fatalf("web=%+v", cfg.Web)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeTempConfig(t, `
gps:
  enable: true
  source: GPSD
  gpsd_addr: "10.0.0.2:2947"
  pps:
    enable: true
    chip: gpiochip4
    line: 18
record:
  enable: true
  path: /tmp/capture.log
udp:
  enable: true
  dest: "192.168.10.255:10110"
mqtt:
  enable: true
  broker: "tcp://broker:1883"
  topic_prefix: boat/nmea
  qos: 1
web:
  listen: "127.0.0.1:9000"
  log_lines: 50
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GPS.Source != "gpsd" || cfg.GPS.GPSDAddr != "10.0.0.2:2947" {
		t.Fatalf("gps=%+v", cfg.GPS)
	}
	if !cfg.GPS.PPS.Enable || cfg.GPS.PPS.Chip != "gpiochip4" || cfg.GPS.PPS.Line != 18 {
		t.Fatalf("pps=%+v", cfg.GPS.PPS)
	}
	if cfg.UDP.Dest != "192.168.10.255:10110" || cfg.MQTT.QoS != 1 || cfg.MQTT.TopicPrefix != "boat/nmea" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Web.Listen != "127.0.0.1:9000" || cfg.Web.LogLines != 50 {
		t.Fatalf("web=%+v", cfg.Web)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad source", "gps:\n  enable: true\n  source: usb\n", "gps.source must be one of nmea, gpsd, tcp, replay"},
		{"tcp addr", "gps:\n  enable: true\n  source: tcp\n", "gps.tcp_addr is required when gps.source=tcp"},
		{"replay path", "gps:\n  enable: true\n  source: replay\n", "replay.path is required when gps.source=replay"},
		{"replay speed", "replay:\n  speed: -2\n", "replay.speed must be > 0"},
		{"record path", "record:\n  enable: true\n", "record.path is required when record.enable is true"},
		{"record with replay", "gps:\n  enable: true\n  source: replay\nreplay:\n  path: in.log\nrecord:\n  enable: true\n  path: out.log\n", "record cannot be used with gps.source=replay"},
		{"udp dest", "udp:\n  enable: true\n", "udp.dest is required when udp.enable is true"},
		{"mqtt broker", "mqtt:\n  enable: true\n", "mqtt.broker is required when mqtt.enable is true"},
		{"mqtt qos", "mqtt:\n  qos: 3\n", "mqtt.qos must be 0, 1 or 2"},
		{"pps line", "gps:\n  pps:\n    enable: true\n    line: -1\n", "gps.pps.line must be >= 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeTempConfig(t, tc.yaml))
			requireErrEq(t, err, tc.want)
		})
	}
}

func TestLoad_DisabledSourceNotValidated(t *testing.T) {
	path := writeTempConfig(t, "gps:\n  source: tcp\n")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeTempConfig(t, "gps: [\n")); err == nil {
		t.Fatalf("expected error")
	}
}
