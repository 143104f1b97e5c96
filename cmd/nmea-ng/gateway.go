package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nmea-ng/internal/config"
	"nmea-ng/internal/gps"
	"nmea-ng/internal/metrics"
	"nmea-ng/internal/mqttpub"
	"nmea-ng/internal/pps"
	"nmea-ng/internal/replay"
	"nmea-ng/internal/udp"
	"nmea-ng/internal/web"
)

// gateway owns every component built from one config and the sink chain
// between them.
type gateway struct {
	cfg    config.Config
	logs   *web.LogBuffer
	status *web.Status
	hub    *web.Hub
	reg    *prometheus.Registry

	gpsSvc    *gps.Service
	ppsMon    *pps.Monitor
	forwarder *udp.Forwarder
	publisher *mqttpub.Publisher
	recorder  *recorder
}

// connectMQTT is swapped out in tests.
var connectMQTT = mqttpub.Connect

func newGateway(cfg config.Config, logs *web.LogBuffer) (*gateway, error) {
	rt := &gateway{
		cfg:    cfg,
		logs:   logs,
		status: web.NewStatus(),
		hub:    web.NewHub(),
		reg:    prometheus.NewRegistry(),
	}
	ok := false
	defer func() {
		if !ok {
			rt.Close()
		}
	}()

	sinks := []gps.Sink{metrics.New(rt.reg), rt.hub}

	if cfg.Record.Enable {
		w, err := replay.CreateWriter(cfg.Record.Path)
		if err != nil {
			return nil, fmt.Errorf("record: %w", err)
		}
		rt.recorder = &recorder{w: w, path: cfg.Record.Path}
		sinks = append(sinks, rt.recorder)
		rt.status.Provide("recorder", func() any { return rt.recorder.Snapshot() })
		log.Printf("recording enabled path=%s", cfg.Record.Path)
	}

	if cfg.UDP.Enable {
		f, err := udp.NewForwarder(cfg.UDP.Dest)
		if err != nil {
			return nil, fmt.Errorf("udp forwarder: %w", err)
		}
		rt.forwarder = f
		sinks = append(sinks, gps.SinkFunc(func(l gps.Line) {
			// Verified frames go out even without a decoder for their type.
			if l.Verified() {
				_ = f.Forward(l.Raw)
			}
		}))
		rt.status.Provide("udp", func() any { return f.Snapshot() })
		log.Printf("udp forwarding enabled dest=%s", cfg.UDP.Dest)
	}

	if cfg.MQTT.Enable {
		p, err := connectMQTT(mqttpub.Config{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			QoS:         byte(cfg.MQTT.QoS),
			Retain:      cfg.MQTT.Retain,
		})
		if err != nil {
			return nil, err
		}
		rt.publisher = p
		sinks = append(sinks, p)
		rt.status.Provide("mqtt", func() any { return p.Snapshot() })
	}

	rt.gpsSvc = gps.New(gps.Config{
		Enable:      cfg.GPS.Enable,
		Source:      cfg.GPS.Source,
		Device:      cfg.GPS.Device,
		Baud:        cfg.GPS.Baud,
		GPSDAddr:    cfg.GPS.GPSDAddr,
		TCPAddr:     cfg.GPS.TCPAddr,
		ReplayPath:  cfg.Replay.Path,
		ReplaySpeed: cfg.Replay.Speed,
		ReplayLoop:  cfg.Replay.Loop,
	}, sinks...)
	rt.status.Provide("gps", func() any { return rt.gpsSvc.Snapshot() })

	rt.ppsMon = pps.New(pps.Config{Enable: cfg.GPS.PPS.Enable, Chip: cfg.GPS.PPS.Chip, Line: cfg.GPS.PPS.Line})
	rt.status.Provide("pps", func() any { return rt.ppsMon.Snapshot() })
	rt.status.Provide("stream", func() any { return rt.hub.Snapshot() })

	ok = true
	return rt, nil
}

func (rt *gateway) Handler() http.Handler {
	metricsHandler := promhttp.HandlerFor(rt.reg, promhttp.HandlerOpts{})
	return web.Handler(rt.status, rt.logs, rt.hub, metricsHandler)
}

// Run starts the sources and serves HTTP until ctx ends. Source failures are
// logged and kept in the status; only the web server stops Run.
func (rt *gateway) Run(ctx context.Context) error {
	if err := rt.gpsSvc.Start(ctx); err != nil {
		log.Printf("gps start failed: %v", err)
	}
	if err := rt.ppsMon.Start(ctx); err != nil {
		log.Printf("pps start failed: %v", err)
	}
	if rt.recorder != nil {
		go rt.recorder.flushEvery(ctx, time.Second)
	}

	log.Printf("web listening addr=%s", rt.cfg.Web.Listen)
	return web.Serve(ctx, rt.cfg.Web.Listen, rt.Handler())
}

func (rt *gateway) Close() {
	if rt.gpsSvc != nil {
		rt.gpsSvc.Close()
	}
	if rt.ppsMon != nil {
		rt.ppsMon.Close()
	}
	if rt.publisher != nil {
		rt.publisher.Close()
	}
	if rt.forwarder != nil {
		_ = rt.forwarder.Close()
	}
	if rt.recorder != nil {
		if err := rt.recorder.Close(); err != nil {
			log.Printf("record close failed: %v", err)
		}
	}
}

// recorder writes every verified line to a capture log.
type recorder struct {
	w    *replay.Writer
	path string

	mu      sync.Mutex
	lastErr string
}

type recorderSnapshot struct {
	Path      string `json:"path"`
	Sentences uint64 `json:"sentences"`
	LastError string `json:"last_error,omitempty"`
}

func (r *recorder) Handle(l gps.Line) {
	if !l.Verified() {
		return
	}
	if err := r.w.WriteSentence(l.At, l.Raw); err != nil {
		r.mu.Lock()
		r.lastErr = err.Error()
		r.mu.Unlock()
	}
}

func (r *recorder) Snapshot() recorderSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return recorderSnapshot{Path: r.path, Sentences: r.w.Count(), LastError: r.lastErr}
}

func (r *recorder) flushEvery(ctx context.Context, d time.Duration) {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := r.w.Flush(); err != nil {
				log.Printf("record flush failed: %v", err)
			}
		}
	}
}

func (r *recorder) Close() error {
	return r.w.Close()
}
