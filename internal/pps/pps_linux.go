//go:build linux

package pps

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

func openEdgeLine(chip string, offset int, onPulse func(at time.Time, ts time.Duration)) (io.Closer, error) {
	if !strings.HasPrefix(chip, "/") {
		chip = filepath.Join("/dev", chip)
	}
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer("nmea-ng-pps"))
	if err != nil {
		return nil, err
	}

	handler := func(evt gpiocdev.LineEvent) {
		if evt.Type != gpiocdev.LineEventRisingEdge {
			return
		}
		onPulse(time.Now().UTC(), evt.Timestamp)
	}
	line, err := c.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithRisingEdge, gpiocdev.WithEventHandler(handler))
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return &edgeLine{chip: c, line: line}, nil
}

type edgeLine struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

func (e *edgeLine) Close() error {
	return errors.Join(e.line.Close(), e.chip.Close())
}
