package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Ric377/FamilyMoney/internal/calculator"
	"github.com/Ric377/FamilyMoney/internal/config"
	"github.com/Ric377/FamilyMoney/internal/metrics"
	"github.com/Ric377/FamilyMoney/internal/middleware"
	"github.com/Ric377/FamilyMoney/internal/service"
	"github.com/Ric377/FamilyMoney/internal/storage/sqlite"
	"github.com/Ric377/FamilyMoney/pkg/api/apiconnect"
	"github.com/Ric377/FamilyMoney/pkg/logging"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector()
	}

	handler := newHandler(cfg, store, collector)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Connect server starting",
		"address", srv.Addr,
		"share_scale", cfg.ShareScale,
		"timezone", cfg.Timezone,
		"metrics", cfg.MetricsEnabled,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

// healthChecker is the part of the store /healthz needs.
type healthChecker interface {
	Ping(ctx context.Context) error
}

// newHandler registers the Connect services, /healthz and, when collector is
// non-nil, /metrics.
func newHandler(cfg *config.Config, store *sqlite.SQLiteStore, collector *metrics.Collector) http.Handler {
	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	if collector != nil {
		interceptors = append(interceptors, collector.Interceptor())
	}
	opts := connect.WithInterceptors(interceptors...)

	summaryOpts := calculator.SummaryOptions{
		Options:  calculator.Options{ShareScale: cfg.ShareScale},
		Location: cfg.Location(),
	}

	mux := http.NewServeMux()

	// Register Connect services
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(service.NewGroupService(store), opts)
	mux.Handle(groupPath, groupHandler)

	paymentPath, paymentHandler := apiconnect.NewPaymentServiceHandler(service.NewPaymentService(store, collector), opts)
	mux.Handle(paymentPath, paymentHandler)

	debtPath, debtHandler := apiconnect.NewDebtServiceHandler(service.NewDebtService(store, summaryOpts, collector), opts)
	mux.Handle(debtPath, debtHandler)

	mux.Handle("GET /healthz", healthHandler(store))
	if collector != nil {
		mux.Handle("GET /metrics", collector.Handler())
	}

	// Add logging and CORS middleware
	return middleware.AccessLog(middleware.CORS(mux))
}

func healthHandler(checker healthChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := checker.Ping(r.Context()); err != nil {
			slog.Error("Health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}
