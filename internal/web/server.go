package web

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"
)

// Handler wires the HTTP surface. Any argument may be nil; its routes are
// then left out.
func Handler(status *Status, logs *LogBuffer, hub *Hub, metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	if status == nil {
		status = NewStatus()
	}

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, status.Snapshot(time.Now().UTC()))
	})

	mux.Handle("/api/decode", DecodeHandler())
	mux.Handle("/api/about", AboutHandler())

	if logs != nil {
		mux.Handle("/api/logs", logs.Handler())
	}
	if hub != nil {
		mux.Handle("/api/stream", hub)
	}
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		snap := status.Snapshot(time.Now().UTC())
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, "<!doctype html><html><head><meta charset=\"utf-8\"><title>nmea-ng</title></head><body>")
		_, _ = fmt.Fprintf(w, "<h1>nmea-ng</h1>")
		_, _ = fmt.Fprintf(w, "<p>uptime=%ds components=%s</p>", snap.UptimeSec, html.EscapeString(fmt.Sprint(snap.Components)))
		_, _ = fmt.Fprintf(w, "<ul><li><a href=\"/api/status\">/api/status</a></li><li><a href=\"/api/logs?format=text\">/api/logs</a></li>")
		_, _ = fmt.Fprintf(w, "<li><a href=\"/api/about\">/api/about</a></li><li><a href=\"/metrics\">/metrics</a></li></ul>")
		_, _ = fmt.Fprintf(w, "</body></html>")
	})

	return mux
}

func Serve(ctx context.Context, listenAddr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// No WriteTimeout: /api/stream connections are long-lived and set
		// their own per-message deadlines.
		IdleTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MiB
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
