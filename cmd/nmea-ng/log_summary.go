package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"nmea-ng/internal/nmea"
	"nmea-ng/internal/replay"
)

type logSummary struct {
	Segments    int
	Sentences   int
	Invalid     int
	MaxDuration time.Duration
	TypeCounts  map[string]int
	ErrorCounts map[string]int
}

func summarizeLog(records []replay.Record) logSummary {
	s := logSummary{TypeCounts: map[string]int{}, ErrorCounts: map[string]int{}}
	if len(records) == 0 {
		return s
	}

	origin := time.Duration(0)
	hasSentences := false
	segments := 0

	for _, r := range records {
		if r.Sentence == nil {
			segments++
			origin = r.At
			continue
		}
		hasSentences = true

		s.Sentences++
		at := r.At - origin
		if at < 0 {
			at = 0
		}
		if at > s.MaxDuration {
			s.MaxDuration = at
		}

		// Framing alone identifies the type; undecodable types still count.
		f, err := nmea.ParseFrame(r.Sentence)
		if err != nil {
			s.Invalid++
			s.ErrorCounts[nmea.ErrorKind(err)]++
			continue
		}
		s.TypeCounts[f.Type.String()]++
		if _, err := nmea.DecodeFrame(f); err != nil {
			s.ErrorCounts[nmea.ErrorKind(err)]++
		}
	}
	if segments == 0 && hasSentences {
		segments = 1
	}
	s.Segments = segments
	return s
}

func printLogSummary(w io.Writer, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("path is empty")
	}

	recs, err := replay.ReadFile(path)
	if err != nil {
		return err
	}
	s := summarizeLog(recs)

	fmt.Fprintf(w, "path: %s\n", path)
	fmt.Fprintf(w, "segments: %d\n", s.Segments)
	fmt.Fprintf(w, "sentences: %d\n", s.Sentences)
	fmt.Fprintf(w, "invalid_sentences: %d\n", s.Invalid)
	fmt.Fprintf(w, "max_duration: %s\n", s.MaxDuration)
	printCounts(w, "type_counts", s.TypeCounts)
	printCounts(w, "error_counts", s.ErrorCounts)
	return nil
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %d\n", k, counts[k])
	}
}
