package products

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// observe records operation outcome metrics when a metrics collaborator
// is attached.
func (s *Service) observe(operation string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveOperation(operation, start, err)
}

// span opens a tracing span when a tracer collaborator is attached. The
// returned func must be deferred.
func (s *Service) span(ctx context.Context, name string) (context.Context, func()) {
	if s.tracer == nil {
		return ctx, func() {}
	}
	ctx, sp := s.tracer.StartSpan(ctx, name,
		attribute.String("account_id", s.account.String()),
		attribute.String("collection", s.cfg.Collection),
	)
	return ctx, func() { sp.End() }
}

func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.log == nil {
		return
	}
	s.log.Debug(msg, nil, s.logFields(fields))
}

func (s *Service) logWarn(msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(msg, err, s.logFields(nil))
}

func (s *Service) logFields(fields map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{
		"account_id": s.account.String(),
		"collection": s.cfg.Collection,
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
