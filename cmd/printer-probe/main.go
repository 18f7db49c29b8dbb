package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidjspooner/printer-probe/internal/diag"
	"github.com/davidjspooner/printer-probe/pkg/logevent"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "requests_total",
	Help: "Total number of requests",
}, []string{"code", "method"})

func main() {
	target := flag.String("target", "", "printer host or IP to probe")
	community := flag.String("community", "public", "SNMP community string")
	local := flag.String("local", "", "local address to send SNMP from (multi-homed hosts)")
	timeout := flag.Duration("timeout", 2*time.Second, "per attempt timeout")
	retries := flag.Int("retries", 1, "SNMP retransmit count")
	maxSteps := flag.Int("max-steps", 0, "walk step ceiling (0 = default)")
	fixedWidth := flag.Bool("fixed-width-id", false, "encode request ids as 4 byte integers")
	configPath := flag.String("config", "", "path to batch config file")
	listen := flag.String("listen", "", "address to serve probe requests on (e.g. :8001)")
	strict := flag.Bool("strict", false, "exit non-zero when the SNMP check fails")
	verbose := flag.Bool("verbose", false, "debug level logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(logevent.NewHandler(&slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := logevent.WithLogger(context.Background(), logger)

	switch {
	case *listen != "":
		server := NewServer(diag.Options{
			Community:           *community,
			LocalAddress:        *local,
			Timeout:             *timeout,
			Retries:             *retries,
			MaxSteps:            *maxSteps,
			FixedWidthRequestID: *fixedWidth,
			Logger:              logger,
		})

		r := chi.NewRouter()
		r.Use(middleware.Heartbeat("/health"))
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		r.Use(func(h http.Handler) http.Handler {
			return promhttp.InstrumentHandlerCounter(requestsTotal, h)
		})

		r.Get("/metrics", promhttp.Handler().ServeHTTP)
		r.Get("/api/v1/probe", server.Probe)
		r.Get("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad request", 400)
		}))

		log.Fatal(http.ListenAndServe(*listen, r))

	case *configPath != "":
		manager := NewManager(logger)
		err := manager.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		ok, err := manager.RunBatch(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if *strict && !ok {
			os.Exit(1)
		}

	case *target != "":
		result := diag.Run(ctx, diag.Options{
			Target:              *target,
			Community:           *community,
			LocalAddress:        *local,
			Timeout:             *timeout,
			Retries:             *retries,
			MaxSteps:            *maxSteps,
			FixedWidthRequestID: *fixedWidth,
			Logger:              logger,
		})
		result.WriteText(os.Stdout)
		if *strict && !result.OK() {
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "one of -target, -config or -listen is required")
		flag.Usage()
		os.Exit(2)
	}
}
