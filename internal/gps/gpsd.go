package gps

import (
	"bytes"
	"strings"
)

const gpsdDefaultAddr = "127.0.0.1:2947"

// gpsdWatchNMEA asks gpsd to relay the receiver's raw sentences alongside its
// JSON reports.
const gpsdWatchNMEA = "?WATCH={\"enable\":true,\"nmea\":true}\n"

func newGPSDClient(addr string) (*LineClient, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = gpsdDefaultAddr
	}
	return NewLineClient(LineClientConfig{Name: "gpsd", Addr: addr, Hello: []byte(gpsdWatchNMEA)})
}

// isGPSDReport reports whether line is one of gpsd's JSON objects rather
// than a relayed sentence.
func isGPSDReport(line []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(line), []byte("{"))
}
