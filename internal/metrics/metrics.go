// Package metrics exposes Prometheus metrics for the RPC layer and the settlement engine.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "familymoney"

// Collector holds all Prometheus metrics for the server.
// Each Collector has its own registry so tests can create as many as they need.
type Collector struct {
	registry *prometheus.Registry

	// RPC metrics
	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	// Business metrics
	Settlements      *prometheus.CounterVec
	DebtsEmitted     prometheus.Counter
	PaymentsRecorded prometheus.Counter
	PaymentsDeleted  prometheus.Counter
}

// NewCollector creates and registers all metrics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		RPCRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "Total number of RPC requests by procedure and code",
			},
			[]string{"procedure", "code"},
		),
		RPCDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_duration_seconds",
				Help:      "RPC handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"procedure"},
		),
		Settlements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "settlements_computed_total",
				Help:      "Number of settlement computations by period kind",
			},
			[]string{"period"},
		),
		DebtsEmitted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "debts_emitted_total",
				Help:      "Number of transfers produced by the settlement engine",
			},
		),
		PaymentsRecorded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_recorded_total",
				Help:      "Number of payments recorded",
			},
		),
		PaymentsDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_deleted_total",
				Help:      "Number of payments deleted",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.RPCRequests,
		c.RPCDuration,
		c.Settlements,
		c.DebtsEmitted,
		c.PaymentsRecorded,
		c.PaymentsDeleted,
	)
	return c
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// RecordSettlement counts one engine run that produced debts transfers.
func (c *Collector) RecordSettlement(period string, debts int) {
	if c == nil {
		return
	}
	c.Settlements.WithLabelValues(period).Inc()
	c.DebtsEmitted.Add(float64(debts))
}

// RecordPayments counts recorded payments.
func (c *Collector) RecordPayments(n int) {
	if c == nil {
		return
	}
	c.PaymentsRecorded.Add(float64(n))
}

// RecordDeletedPayments counts deleted payments.
func (c *Collector) RecordDeletedPayments(n int) {
	if c == nil {
		return
	}
	c.PaymentsDeleted.Add(float64(n))
}

// Interceptor returns a Connect interceptor that counts and times every RPC.
func (c *Collector) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeUnknown.String()
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
				}
			}
			c.RPCRequests.WithLabelValues(procedure, code).Inc()
			c.RPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
