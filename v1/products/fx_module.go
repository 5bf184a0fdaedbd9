package products

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/search-store/v1/logger"
	"github.com/Aleph-Alpha/search-store/v1/metrics"
	"github.com/Aleph-Alpha/search-store/v1/tracer"
)

// FXModule wires the product vector store into Fx.
//
// It provides:
//   - *Config   (FromEnv)
//   - *Client   (the connected backend wrapper)
//   - *Factory  (per-tenant Service construction)
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    products.FXModule,
//	    fx.Invoke(func(f *products.Factory) {
//	        svc, _ := f.For(account.MustNew("shop-1"))
//	        // use svc
//	    }),
//	)
var FXModule = fx.Module("products",
	fx.Provide(
		FromEnv,
		NewClientWithDI,
		NewFactoryWithDI,
	),
	fx.Invoke(RegisterClientLifecycle),
)

// ClientParams groups the dependencies needed to build the backend client.
type ClientParams struct {
	fx.In

	Config *Config
	Logger *logger.Logger `optional:"true"`
}

// NewClientWithDI builds the connected backend client from injected
// dependencies.
func NewClientWithDI(params ClientParams) (*Client, error) {
	return NewClient(params.Config, params.Logger)
}

// FactoryParams groups the optional observability collaborators of the
// per-tenant service factory.
type FactoryParams struct {
	fx.In

	Config  *Config
	Client  *Client
	Logger  *logger.Logger   `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
	Tracer  *tracer.Tracer   `optional:"true"`
}

// NewFactoryWithDI builds the per-tenant Service factory from injected
// dependencies.
func NewFactoryWithDI(params FactoryParams) *Factory {
	var opts []Option
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}
	if params.Metrics != nil {
		opts = append(opts, WithMetrics(params.Metrics))
	}
	if params.Tracer != nil {
		opts = append(opts, WithTracer(params.Tracer))
	}
	return NewFactory(params.Config, params.Client.Backend(), opts...)
}

// RegisterClientLifecycle closes the backend connection on shutdown.
func RegisterClientLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
