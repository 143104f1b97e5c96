//go:build !linux

package pps

import (
	"fmt"
	"io"
	"time"
)

func openEdgeLine(chip string, offset int, onPulse func(at time.Time, ts time.Duration)) (io.Closer, error) {
	return nil, fmt.Errorf("pps: gpio unsupported on this platform")
}
