// Package telemetry records retention metrics with OpenTelemetry.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bnema/registry-cli/internal/boundaries/out"
	"github.com/bnema/registry-cli/internal/domain"
)

// Ensure Metrics implements out.EventHandler.
var _ out.EventHandler = (*Metrics)(nil)

// Metrics holds the retention metric instruments.
type Metrics struct {
	TagOutcomes           metric.Int64Counter
	RepositoriesProcessed metric.Int64Counter
	UnresolvedTags        metric.Int64Counter
	RunsAborted           metric.Int64Counter
}

// NewMetrics creates the instruments on provider, or on the global provider
// when nil. Instruments are noop until a MeterProvider is installed.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter("registry-cli")
	m := &Metrics{}
	var err error

	if m.TagOutcomes, err = meter.Int64Counter("registry_cli.tags.outcome",
		metric.WithDescription("Delete candidates processed, by outcome")); err != nil {
		return nil, err
	}
	if m.RepositoriesProcessed, err = meter.Int64Counter("registry_cli.repositories.processed",
		metric.WithDescription("Repositories processed, skipped or planned")); err != nil {
		return nil, err
	}
	if m.UnresolvedTags, err = meter.Int64Counter("registry_cli.tags.unresolved",
		metric.WithDescription("Tags excluded because their age could not be resolved")); err != nil {
		return nil, err
	}
	if m.RunsAborted, err = meter.Int64Counter("registry_cli.runs.aborted",
		metric.WithDescription("Runs aborted by a listing failure")); err != nil {
		return nil, err
	}

	return m, nil
}

// CanHandle reports whether the event feeds a metric.
func (m *Metrics) CanHandle(eventType domain.EventType) bool {
	switch eventType {
	case domain.EventTagProcessed, domain.EventRepositoryPlanned, domain.EventRepositorySkipped, domain.EventRunAborted:
		return true
	default:
		return false
	}
}

// Handle records the event.
func (m *Metrics) Handle(ctx context.Context, event domain.Event) error {
	switch p := event.Data.(type) {
	case domain.TagProcessedPayload:
		m.TagOutcomes.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", p.Result.Outcome.String()),
		))
	case domain.RepositoryPlannedPayload:
		m.RepositoriesProcessed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "planned")))
		if n := len(p.Unresolved); n > 0 {
			m.UnresolvedTags.Add(ctx, int64(n))
		}
	case domain.RepositorySkippedPayload:
		m.RepositoriesProcessed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "skipped")))
	case domain.RunAbortedPayload:
		m.RunsAborted.Add(ctx, 1)
	}
	return nil
}
