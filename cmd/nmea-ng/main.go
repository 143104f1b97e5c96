package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nmea-ng/internal/config"
	"nmea-ng/internal/web"
)

func main() {
	var configPath string
	var decodePath string
	var summaryPath string
	flag.StringVar(&configPath, "config", "./dev.yaml", "Path to YAML config")
	flag.StringVar(&decodePath, "decode", "", "Decode sentences from a file (or - for stdin) to JSON lines and exit")
	flag.StringVar(&summaryPath, "summary", "", "Print per-type counts for a capture log and exit")
	flag.Parse()

	if summaryPath != "" {
		if err := printLogSummary(os.Stdout, summaryPath); err != nil {
			log.Fatalf("summary failed: %v", err)
		}
		return
	}
	if decodePath != "" {
		if err := decodeFile(os.Stdout, decodePath); err != nil {
			log.Fatalf("decode failed: %v", err)
		}
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logs := web.NewLogBuffer(cfg.Web.LogLines)
	log.SetOutput(io.MultiWriter(os.Stderr, logs))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gw, err := newGateway(cfg, logs)
	if err != nil {
		log.Fatalf("gateway init failed: %v", err)
	}
	defer gw.Close()

	log.Printf("nmea-ng starting config=%s", configPath)
	if err := gw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("nmea-ng stopped: %v", err)
	}
	log.Printf("nmea-ng stopping")
}
