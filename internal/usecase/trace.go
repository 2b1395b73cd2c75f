package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/football-portal/internal/domain/session"
)

var (
	usecaseTracer   = otel.Tracer("football-portal/internal/usecase")
	usecaseNoopSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan opens a child span only inside a sampled request trace,
// tagged with whether the viewer is signed in.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, usecaseNoopSpan
	}

	current, _ := session.FromContext(ctx)
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(
		attribute.Bool("portal.signed_in", current.Authenticated()),
	))
}
