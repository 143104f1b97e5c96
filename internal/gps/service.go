package gps

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"nmea-ng/internal/nmea"
	"nmea-ng/internal/replay"
)

// Config controls where sentences come from.
//
// Device may be empty to auto-detect a USB receiver. Baud must be a rate the
// platform serial implementation supports.
type Config struct {
	Enable bool

	// Source is "nmea" (direct serial), "gpsd", "tcp" or "replay".
	// When empty, defaults to "nmea".
	Source string

	Device string
	Baud   int

	// GPSDAddr is host:port for gpsd when Source=="gpsd".
	GPSDAddr string

	// TCPAddr is host:port of a raw NMEA stream when Source=="tcp".
	TCPAddr string

	ReplayPath  string
	ReplaySpeed float64
	ReplayLoop  bool
}

// fixStaleAfter is how long a fix stays fresh without another position.
const fixStaleAfter = 3 * time.Second

type Snapshot struct {
	Enabled  bool `json:"enabled"`
	Valid    bool `json:"valid"`
	FixStale bool `json:"fix_stale"`

	Source string `json:"source,omitempty"`
	Device string `json:"device,omitempty"`
	Baud   int    `json:"baud,omitempty"`
	Addr   string `json:"addr,omitempty"`
	Talker string `json:"talker,omitempty"`

	LatDeg           float64  `json:"lat_deg,omitempty"`
	LonDeg           float64  `json:"lon_deg,omitempty"`
	AltMeters        *float64 `json:"alt_m,omitempty"`
	AltFeet          *int     `json:"alt_feet,omitempty"`
	GeoidSepM        *float64 `json:"geoid_sep_m,omitempty"`
	GroundKt         *float64 `json:"ground_kt,omitempty"`
	TrackDeg         *float64 `json:"track_deg,omitempty"`
	HeadingDeg       *float64 `json:"heading_deg,omitempty"`
	FixQuality       string   `json:"fix_quality,omitempty"`
	FixMode          string   `json:"fix_mode,omitempty"`
	Satellites       *int     `json:"satellites,omitempty"`
	SatellitesInView *int     `json:"satellites_in_view,omitempty"`
	HDOP             *float64 `json:"hdop,omitempty"`
	PDOP             *float64 `json:"pdop,omitempty"`
	VDOP             *float64 `json:"vdop,omitempty"`
	FixAgeSec        float64  `json:"fix_age_sec,omitempty"`

	ReceiverTimeUTC string `json:"receiver_time_utc,omitempty"`
	LastFixUTC      string `json:"last_fix_utc,omitempty"`

	Lines     uint64            `json:"lines"`
	Sentences map[string]uint64 `json:"sentences,omitempty"`
	Errors    map[string]uint64 `json:"errors,omitempty"`
	LastError string            `json:"last_error,omitempty"`

	Client *LineSnapshot `json:"client,omitempty"`

	lastFix time.Time
}

// Line is one received sentence after validation and decoding.
//
// Frame is zero when framing failed. Sentence is nil whenever Err is set,
// including checksum-valid frames of a type with no decoder.
type Line struct {
	At       time.Time
	Raw      []byte
	Frame    nmea.Frame
	Sentence nmea.Sentence
	Err      error
}

// Verified reports whether the line passed framing and checksum checks.
func (l Line) Verified() bool { return l.Frame.Type != nmea.TypeUnknown }

// Sink receives every handled line in arrival order. Handle runs on the
// reader goroutine and should not block.
type Sink interface {
	Handle(Line)
}

type SinkFunc func(Line)

func (f SinkFunc) Handle(l Line) { f(l) }

type Service struct {
	cfg   Config
	src   string
	sinks []Sink
	now   func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup

	last atomic.Value // Snapshot

	mu        sync.Mutex
	closer    io.Closer
	client    *LineClient
	st        fixState
	device    string
	baud      int
	addr      string
	lines     uint64
	sentences map[string]uint64
	errs      map[string]uint64
	lastErr   string
}

func New(cfg Config, sinks ...Sink) *Service {
	src := strings.ToLower(strings.TrimSpace(cfg.Source))
	if src == "" {
		src = "nmea"
	}
	s := &Service{
		cfg:       cfg,
		src:       src,
		sinks:     sinks,
		now:       func() time.Time { return time.Now().UTC() },
		device:    cfg.Device,
		baud:      cfg.Baud,
		sentences: map[string]uint64{},
		errs:      map[string]uint64{},
	}
	s.mu.Lock()
	s.publishLocked()
	s.mu.Unlock()
	return s
}

func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("gps service is nil")
	}
	if !s.cfg.Enable {
		return nil
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	switch s.src {
	case "nmea":
		return s.startSerialLocked(ctx)
	case "gpsd":
		c, err := newGPSDClient(s.cfg.GPSDAddr)
		if err != nil {
			return err
		}
		return s.startClientLocked(ctx, c)
	case "tcp":
		c, err := NewLineClient(LineClientConfig{Name: "tcp", Addr: strings.TrimSpace(s.cfg.TCPAddr)})
		if err != nil {
			return err
		}
		return s.startClientLocked(ctx, c)
	case "replay":
		return s.startReplayLocked(ctx)
	default:
		return fmt.Errorf("unknown gps source %q", s.cfg.Source)
	}
}

func (s *Service) startSerialLocked(ctx context.Context) error {
	device := strings.TrimSpace(s.cfg.Device)
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			s.setErrorLocked("gps auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
			return fmt.Errorf("gps auto-detect failed")
		}
	}

	baud := s.cfg.Baud
	if baud == 0 {
		baud = 9600
	}

	f, err := openSerial(device, baud)
	if err != nil {
		s.setErrorLocked(fmt.Sprintf("gps open failed device=%s baud=%d: %v", device, baud, err))
		return fmt.Errorf("open %s: %w", device, err)
	}
	s.closer = f
	s.device = device
	s.baud = baud
	s.publishLocked()

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() { _ = f.Close() }()

		log.Printf("gps enabled source=nmea device=%s baud=%d", device, baud)
		err := s.ReadFrom(childCtx, f)
		if err != nil && childCtx.Err() == nil {
			s.setError(fmt.Sprintf("gps read stopped: %v", err))
		}
	}()
	return nil
}

func (s *Service) startClientLocked(ctx context.Context, c *LineClient) error {
	s.client = c
	s.addr = c.cfg.Addr
	s.publishLocked()

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	onLine := func(line []byte) error {
		if isGPSDReport(line) {
			return nil
		}
		s.HandleLine(s.now(), line)
		return nil
	}
	if err := c.Start(childCtx, onLine); err != nil {
		cancel()
		s.cancel = nil
		return err
	}
	log.Printf("gps enabled source=%s addr=%s", s.src, s.addr)
	return nil
}

func (s *Service) startReplayLocked(ctx context.Context) error {
	path := strings.TrimSpace(s.cfg.ReplayPath)
	records, err := replay.ReadFile(path)
	if err != nil {
		s.setErrorLocked(err.Error())
		return err
	}
	speed := s.cfg.ReplaySpeed
	if speed <= 0 {
		speed = 1
	}
	s.device = path
	s.publishLocked()

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Printf("gps enabled source=replay path=%s records=%d speed=%.2f loop=%t", path, len(records), speed, s.cfg.ReplayLoop)
		err := replay.Play(childCtx, records, speed, s.cfg.ReplayLoop, nil, func(sentence []byte) error {
			s.HandleLine(s.now(), sentence)
			return nil
		})
		switch {
		case err == nil:
			log.Printf("gps replay finished path=%s", path)
		case errors.Is(err, context.Canceled):
		default:
			s.setError(fmt.Sprintf("gps replay stopped: %v", err))
		}
	}()
	return nil
}

// ReadFrom handles newline-delimited sentences from r until EOF, a read
// error or ctx cancellation. EOF is reported as io.EOF. Lines longer than
// maxReadLine are dropped up to their newline and counted as "length" errors.
func (s *Service) ReadFrom(ctx context.Context, r io.Reader) error {
	reader := bufio.NewReaderSize(r, maxReadLine)
	discarding := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := reader.ReadSlice('\n')
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			if !discarding {
				discarding = true
				s.countOversized()
			}
			continue
		case discarding:
			// Tail of an oversized line.
			discarding = false
		case len(line) > 0:
			s.HandleLine(s.now(), line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.EOF
			}
			return err
		}
	}
}

// Sentences are at most 102 bytes; leave headroom for receiver chatter.
const maxReadLine = 4096

func (s *Service) countOversized() {
	s.mu.Lock()
	s.lines++
	s.errs["length"]++
	s.lastErr = fmt.Sprintf("line longer than %d bytes dropped", maxReadLine)
	s.publishLocked()
	s.mu.Unlock()
}

// HandleLine validates, decodes and applies one received line, then passes
// it to the sinks. Blank lines and lines that do not start with '$' or '!'
// are ignored and reported as false.
func (s *Service) HandleLine(nowUTC time.Time, raw []byte) (Line, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '$' && trimmed[0] != '!') {
		return Line{}, false
	}
	// Decoded text fields alias Raw, so it must not share the caller's buffer.
	line := Line{At: nowUTC, Raw: append([]byte(nil), trimmed...)}

	frame, err := nmea.ParseFrame(line.Raw)
	if err == nil {
		line.Frame = frame
		line.Sentence, err = nmea.DecodeFrame(frame)
	}
	line.Err = err

	s.mu.Lock()
	s.lines++
	if err != nil {
		kind := nmea.ErrorKind(err)
		if kind == "" {
			kind = "other"
		}
		s.errs[kind]++
		s.lastErr = err.Error()
	} else {
		s.sentences[line.Sentence.Type().String()]++
		s.st.apply(nowUTC, frame.Talker(), line.Sentence)
	}
	s.publishLocked()
	s.mu.Unlock()

	for _, sink := range s.sinks {
		sink.Handle(line)
	}
	return line, true
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	closer := s.closer
	client := s.client
	s.cancel = nil
	s.closer = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if closer != nil {
		_ = closer.Close()
	}
	if client != nil {
		client.Close()
	}
	s.wg.Wait()
}

// Snapshot returns the latest state with fix age computed at call time.
func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	out := v.(Snapshot)

	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client != nil {
		cs := client.Snapshot()
		out.Client = &cs
	}

	if !out.lastFix.IsZero() {
		age := s.now().Sub(out.lastFix)
		if age < 0 {
			age = 0
		}
		out.FixAgeSec = age.Seconds()
		out.FixStale = age > fixStaleAfter
	}
	return out
}

// publishLocked stores a fresh snapshot. The counter maps are copied so
// readers never share them with the writer.
func (s *Service) publishLocked() {
	out := Snapshot{
		Enabled:   s.cfg.Enable,
		Source:    s.src,
		Device:    s.device,
		Baud:      s.baud,
		Addr:      s.addr,
		Lines:     s.lines,
		LastError: s.lastErr,
		lastFix:   s.st.lastFix,
	}
	s.st.fill(&out)
	if len(s.sentences) > 0 {
		out.Sentences = make(map[string]uint64, len(s.sentences))
		for k, v := range s.sentences {
			out.Sentences[k] = v
		}
	}
	if len(s.errs) > 0 {
		out.Errors = make(map[string]uint64, len(s.errs))
		for k, v := range s.errs {
			out.Errors[k] = v
		}
	}
	s.last.Store(out)
}

func (s *Service) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErrorLocked(msg)
}

func (s *Service) setErrorLocked(msg string) {
	// Validity is left alone; a transient source problem shouldn't flip it.
	s.lastErr = msg
	s.publishLocked()
}

func autoDetectDevice() string {
	candidates := []string{}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
