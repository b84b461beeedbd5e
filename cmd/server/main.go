package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/finledger/internal/auth"
	"github.com/mmynk/finledger/internal/config"
	"github.com/mmynk/finledger/internal/export"
	"github.com/mmynk/finledger/internal/middleware"
	"github.com/mmynk/finledger/internal/service"
	"github.com/mmynk/finledger/internal/storage/sqlstore"
	"github.com/mmynk/finledger/pkg/api/ledgerv1/ledgerv1connect"
	"github.com/mmynk/finledger/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default ./finledger.yaml if present)")
	issueFor := flag.String("issue-token", "", "print a bearer token for this user ID and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if *issueFor != "" {
		token, err := jwtManager.Generate(*issueFor)
		if err != nil {
			slog.Error("Failed to issue token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if err := run(cfg, jwtManager); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, jwtManager *auth.JWTManager) error {
	store, err := sqlstore.New(sqlstore.Driver(cfg.Database.Driver), cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Database.Driver)

	interceptors := []connect.Interceptor{}
	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		interceptors = append(interceptors, middleware.NewMetrics(registry).Interceptor())
	}
	interceptors = append(interceptors, middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor())
	opts := connect.WithInterceptors(interceptors...)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID, chimiddleware.Recoverer, loggingMiddleware, corsMiddleware)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	if cfg.Metrics.Enabled {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Register Connect services
	balancePath, balanceHandler := ledgerv1connect.NewBalanceServiceHandler(service.NewBalanceService(store), opts)
	router.Handle(balancePath+"*", balanceHandler)

	loanPath, loanHandler := ledgerv1connect.NewLoanServiceHandler(service.NewLoanService(store), opts)
	router.Handle(loanPath+"*", loanHandler)

	obligationPath, obligationHandler := ledgerv1connect.NewObligationServiceHandler(service.NewObligationService(store), opts)
	router.Handle(obligationPath+"*", obligationHandler)

	ledgerPath, ledgerHandler := ledgerv1connect.NewLedgerServiceHandler(service.NewLedgerService(store), opts)
	router.Handle(ledgerPath+"*", ledgerHandler)

	router.Route("/export", func(r chi.Router) {
		r.Use(middleware.RequireAuthHTTP(jwtManager))
		export.NewHandler(store).Routes(r)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loggingMiddleware logs every HTTP request with its status and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chimiddleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
