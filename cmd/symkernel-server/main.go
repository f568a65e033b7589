// cmd/symkernel-server/main.go: HTTP front end for the symkernel simplifier
//
// Usage:
//
//	symkernel-server -config symkernel.yaml
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	sk "github.com/njchilds90/symkernel"
	"github.com/njchilds90/symkernel/internal/config"
	"github.com/njchilds90/symkernel/internal/logging"
	"github.com/njchilds90/symkernel/internal/metrics"
	"github.com/njchilds90/symkernel/tool"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	configPath := flag.String("config", "", "YAML or TOML config file")
	port := flag.String("port", "", "Port to listen on (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintln(os.Stderr, "symkernel-server:", err)
		os.Exit(1)
	}
}

func run(configPath, port string) error {
	cfg := config.LoadOrDefault()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}
	if port != "" {
		cfg.Server.Port = port
	}

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, Development: cfg.Logging.Development})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	engineCfg, err := cfg.ToEngine()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	engine, err := sk.New(engineCfg, sk.WithLogger(logger.Named("engine")), sk.WithObserver(m.ObserveRule))
	if err != nil {
		return err
	}
	handler := tool.NewHandler(engine, cfg.Engine.BatchWorkers)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newMux(handler, m, logger.Logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() {
		logger.Info("symkernel server listening",
			zap.String("addr", srv.Addr),
			zap.Uint32("precision", engineCfg.Precision),
			zap.Int("batch_workers", cfg.Engine.BatchWorkers))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newMux(h *tool.Handler, m *metrics.Metrics, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// POST /tool: handle a tool call
	mux.Handle("/tool", m.Middleware("/tool", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic in /tool", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		req, err := tool.DecodeRequest(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		resp := h.Handle(r.Context(), req)
		m.ObserveTool(tool.Name(req.Tool), resp.Error != "")
		status := http.StatusOK
		if resp.Error != "" {
			log.Debug("tool call failed", zap.String("tool", req.Tool), zap.String("error", resp.Error))
			status = http.StatusBadRequest
		}
		writeJSON(w, status, resp)
	})))

	// GET /schema: tool schema for agent registration
	mux.Handle("/schema", m.Middleware("/schema", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tool.Schema())
	})))

	// GET /health: liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("/metrics", m.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
