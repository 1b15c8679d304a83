package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/labyrinth/pkg/adapters/http"
	"github.com/aretw0/labyrinth/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// NewAPIHandler builds the engine and its HTTP handler. With metrics enabled the
// engine hooks feed a dedicated registry exposed on /metrics.
func NewAPIHandler(opts EngineOptions) (http.Handler, func() error, error) {
	var handlerOpts []httpAdapter.Option

	if opts.Config.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		opts.Hooks = opts.Hooks.Merge(metrics.Hooks())
		handlerOpts = append(handlerOpts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	engine, closer, err := CreateEngine(opts)
	if err != nil {
		return nil, nil, err
	}
	handlerOpts = append(handlerOpts, httpAdapter.WithLogger(engine.Logger()))

	return httpAdapter.NewHandler(engine, handlerOpts...), closer, nil
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts EngineOptions, out io.Writer) error {
	handler, closer, err := NewAPIHandler(opts)
	if err != nil {
		return err
	}
	defer closer()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSystemMessage(out, "Starting Labyrinth Server on %s", srv.Addr)
	printSystemMessage(out, "Serving mazes from: %s", opts.Config.Dir)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		printSystemMessage(out, "Labyrinth Server stopped gracefully")
		return nil
	}
}
