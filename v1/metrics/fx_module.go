package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/search-store/v1/logger"
)

// FXModule wires the Prometheus metrics server into an Fx application.
// It provides the Config (from environment) and the *Metrics instance,
// and manages the /metrics HTTP server lifecycle.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewConfig,
		NewMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics HTTP server on application
// start and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
