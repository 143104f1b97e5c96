package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"nmea-ng/internal/nmea"
)

type decodedLine struct {
	Line   int               `json:"line"`
	Type   nmea.SentenceType `json:"type,omitempty"`
	Talker string            `json:"talker,omitempty"`
	Data   nmea.Sentence     `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
	Kind   string            `json:"kind,omitempty"`
}

type decodeTotals struct {
	Decoded int
	Failed  int
}

// decodeLines writes one JSON object per sentence in r. Blank lines are
// skipped but still counted for line numbers.
func decodeLines(w io.Writer, r io.Reader) (decodeTotals, error) {
	var totals decodeTotals
	enc := json.NewEncoder(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256), 64*1024)

	n := 0
	for sc.Scan() {
		n++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		out := decodedLine{Line: n}
		f, err := nmea.ParseFrame(raw)
		var s nmea.Sentence
		if err == nil {
			s, err = nmea.DecodeFrame(f)
		}
		if err != nil {
			out.Error = err.Error()
			out.Kind = nmea.ErrorKind(err)
			totals.Failed++
		} else {
			out.Type = s.Type()
			out.Talker = f.Talker()
			out.Data = s
			totals.Decoded++
		}
		if err := enc.Encode(out); err != nil {
			return totals, err
		}
	}
	return totals, sc.Err()
}

func decodeFile(w io.Writer, path string) error {
	path = strings.TrimSpace(path)
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	totals, err := decodeLines(w, r)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "decoded=%d failed=%d\n", totals.Decoded, totals.Failed)
	return nil
}
