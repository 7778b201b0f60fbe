package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the job pipeline instruments
type Metrics struct {
	JobRuns            metric.Int64Counter
	JobDuration        metric.Float64Histogram
	GenerationDuration metric.Float64Histogram
	EmailsSent         metric.Int64Counter
}

// InitMetrics creates the instruments on the global meter provider
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("social-media-agent")

	jobRuns, err := meter.Int64Counter(
		"agent.job.runs",
		metric.WithDescription("Completed plan jobs by trigger and status"),
	)
	if err != nil {
		return nil, err
	}

	jobDuration, err := meter.Float64Histogram(
		"agent.job.duration",
		metric.WithDescription("Plan job duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	generationDuration, err := meter.Float64Histogram(
		"agent.generation.duration",
		metric.WithDescription("Generation endpoint latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	emailsSent, err := meter.Int64Counter(
		"agent.emails.sent",
		metric.WithDescription("Plan emails handed to the relay"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		JobRuns:            jobRuns,
		JobDuration:        jobDuration,
		GenerationDuration: generationDuration,
		EmailsSent:         emailsSent,
	}, nil
}

// RecordJob records a finished job. Safe on a nil receiver.
func (m *Metrics) RecordJob(ctx context.Context, trigger, status string, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("job.trigger", trigger),
		attribute.String("job.status", status),
	)
	m.JobRuns.Add(ctx, 1, attrs)
	m.JobDuration.Record(ctx, seconds, attrs)
}

func (m *Metrics) RecordGeneration(ctx context.Context, provider string, success bool, seconds float64) {
	if m == nil {
		return
	}
	m.GenerationDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("generation.provider", provider),
		attribute.Bool("generation.success", success),
	))
}

func (m *Metrics) RecordEmailSent(ctx context.Context) {
	if m == nil {
		return
	}
	m.EmailsSent.Add(ctx, 1)
}
