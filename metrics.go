package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes two per-minute activity gauges for the monitoring
// scrape. Gauges instead of counters: both are zeroed at every minute
// boundary, so a scrape reads activity since the last reset.
type Metrics struct {
	reg *prometheus.Registry

	Users    prometheus.Gauge
	Requests prometheus.Gauge
}

func newMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		Users: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tbilisi_bus_timetable_bot_users",
			Help: "Users who started the bot since the last minute reset.",
		}),
		Requests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tbilisi_bus_timetable_bot_requests",
			Help: "Timetable requests since the last minute reset.",
		}),
	}

	reg.MustRegister(m.Users, m.Requests)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics on the given address.
func (m *Metrics) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}

// RunResetLoop zeroes both gauges at every minute boundary until ctx is
// cancelled.
func (m *Metrics) RunResetLoop(ctx context.Context) {
	for {
		now := time.Now()
		next := now.Truncate(time.Minute).Add(time.Minute)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			m.Users.Set(0)
			m.Requests.Set(0)
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
