package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the logger into an Fx application. It provides the
// Config (from environment) and the *Logger, and registers a shutdown
// hook that flushes buffered entries.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewConfig,
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes the Zap logger on application shutdown
// so no buffered entries are lost.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr returns EINVAL on some platforms; the entries
			// are already written, so the error is not actionable.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
