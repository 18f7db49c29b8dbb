package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/davidjspooner/printer-probe/internal/diag"
)

var probeHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "probe_duration_seconds",
	Help: "Duration of the printer diagnostic",
}, []string{"target", "outcome"})

var probeCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "probe_total",
	Help: "Total number of printer diagnostics",
}, []string{"target", "outcome"})

type Server struct {
	defaults diag.Options
}

func NewServer(defaults diag.Options) *Server {
	return &Server{defaults: defaults}
}

// Probe runs the diagnostic for ?target=... and returns the plain text
// transcript. Community may be overridden per request; everything else comes
// from the server defaults.
func (s *Server) Probe(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		http.Error(w, "target parameter is required", http.StatusBadRequest)
		return
	}

	options := s.defaults
	options.Target = target
	if community := r.URL.Query().Get("community"); community != "" {
		options.Community = community
	}

	started := time.Now()
	result := diag.Run(r.Context(), options)
	outcome := outcomeLabel(result)
	probeHistogram.WithLabelValues(target, outcome).Observe(time.Since(started).Seconds())
	probeCounter.WithLabelValues(target, outcome).Inc()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !result.OK() {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	text := &strings.Builder{}
	result.WriteText(text)
	w.Write([]byte(text.String()))
}

func outcomeLabel(result *diag.Result) string {
	switch {
	case result.SNMPPass && result.HTTPSPass:
		return "pass"
	case result.SNMPPass || result.HTTPSPass:
		return "partial"
	}
	return "fail"
}
