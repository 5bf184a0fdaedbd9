package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/search-store/v1/logger"
)

// FXModule makes the tracer injectable with fx dependency injection.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewConfig,
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle flushes and shuts down the tracer provider when
// the application stops.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := t.Shutdown(ctx); err != nil {
				log.Warn("tracer shutdown failed", err, nil)
			}
			return nil
		},
	})
}
