package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeLines(t *testing.T) {
	bad := nmeaLine("GPHDT,123.45,T")
	bad = bad[:len(bad)-2] + "00"
	in := strings.Join([]string{
		nmeaLine("GPHDT,123.45,T"),
		"",
		bad,
		nmeaLine("GNGLL,4916.45,N,12311.12,W,225444,A,D"),
	}, "\r\n")

	var out bytes.Buffer
	totals, err := decodeLines(&out, strings.NewReader(in))
	if err != nil {
		t.Fatalf("decodeLines() error: %v", err)
	}
	if totals.Decoded != 2 || totals.Failed != 1 {
		t.Fatalf("totals=%+v", totals)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d output lines: %q", len(lines), out.String())
	}
	var first, second, third map[string]any
	for i, dst := range []*map[string]any{&first, &second, &third} {
		if err := json.Unmarshal([]byte(lines[i]), dst); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
	}
	if first["line"] != 1.0 || first["type"] != "HDT" || first["talker"] != "GP" {
		t.Fatalf("first=%v", first)
	}
	if second["line"] != 3.0 || second["kind"] != "checksum" || second["data"] != nil {
		t.Fatalf("second=%v", second)
	}
	data, ok := third["data"].(map[string]any)
	if !ok || data["mode"] != "differential" || third["talker"] != "GN" {
		t.Fatalf("third=%v", third)
	}
}
