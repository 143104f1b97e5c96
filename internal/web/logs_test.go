package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogBuffer_HoldsPartialLines(t *testing.T) {
	b := NewLogBuffer(10)
	_, _ = b.Write([]byte("first line\nsecond "))
	lines, _ := b.Snapshot(10)
	if len(lines) != 1 || lines[0] != "first line" {
		t.Fatalf("lines=%q", lines)
	}
	_, _ = b.Write([]byte("half\r\n\nthird\n"))
	lines, _ = b.Snapshot(10)
	if strings.Join(lines, "|") != "first line|second half|third" {
		t.Fatalf("lines=%q", lines)
	}
}

func TestLogBuffer_DropsOldest(t *testing.T) {
	b := NewLogBuffer(2)
	_, _ = b.Write([]byte("a\nb\nc\n"))
	lines, dropped := b.Snapshot(0)
	if strings.Join(lines, ",") != "b,c" || dropped != 1 {
		t.Fatalf("lines=%q dropped=%d", lines, dropped)
	}
}

func TestLogsHandler_TailAndFormats(t *testing.T) {
	b := NewLogBuffer(100)
	_, _ = b.Write([]byte("one\ntwo\nthree\n"))
	ts := httptest.NewServer(Handler(NewStatus(), b, nil, nil))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/logs?tail=2")
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	var out LogsResponse
	err = json.NewDecoder(resp.Body).Decode(&out)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if strings.Join(out.Lines, ",") != "two,three" {
		t.Fatalf("lines=%q", out.Lines)
	}

	resp, err = http.Get(ts.URL + "/api/logs?format=text")
	if err != nil {
		t.Fatalf("get logs text: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "one\ntwo\nthree\n" {
		t.Fatalf("body=%q", body)
	}

	resp, err = http.Get(ts.URL + "/api/logs?tail=0")
	if err != nil {
		t.Fatalf("get logs bad tail: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status code=%d", resp.StatusCode)
	}
}
