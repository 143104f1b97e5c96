// Package metrics exports Prometheus counters for sentence decoding.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"nmea-ng/internal/gps"
	"nmea-ng/internal/nmea"
)

// Metrics counts every line the gps service hands to it.
type Metrics struct {
	linesTotal     prometheus.Counter
	sentencesTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
}

// New registers the counters with reg. Pass prometheus.DefaultRegisterer to
// expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		linesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "nmea_lines_total",
			Help: "Total number of sentence lines received",
		}),
		sentencesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nmea_sentences_total",
				Help: "Total number of sentences decoded, by type",
			},
			[]string{"type"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nmea_decode_errors_total",
				Help: "Total number of lines rejected, by error kind",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) Handle(l gps.Line) {
	m.linesTotal.Inc()
	if l.Err != nil {
		kind := nmea.ErrorKind(l.Err)
		if kind == "" {
			kind = "other"
		}
		m.errorsTotal.WithLabelValues(kind).Inc()
		return
	}
	m.sentencesTotal.WithLabelValues(l.Sentence.Type().String()).Inc()
}
