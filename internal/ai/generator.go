package ai

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"social-media-agent/internal/logger"
	"social-media-agent/internal/telemetry"
	"social-media-agent/models"
)

// Completer returns the text completion for a single prompt.
type Completer interface {
	Name() string
	Model() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator turns interests into a content plan with exactly one request to
// the completer per call.
type Generator struct {
	completer Completer
	breaker   *gobreaker.CircuitBreaker
	metrics   *telemetry.Metrics
}

func NewGenerator(completer Completer, metrics *telemetry.Metrics) *Generator {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        completer.Name(),
		MaxRequests: 1,
		Timeout:     30 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Generation circuit breaker state changed", "provider", name, "from", from.String(), "to", to.String())
		},
	})

	return &Generator{
		completer: completer,
		breaker:   breaker,
		metrics:   metrics,
	}
}

// Generate builds the prompt, requests a completion and parses the plan.
// Every failure is returned as *GenerationError.
func (g *Generator) Generate(ctx context.Context, interests []string) (models.ContentPlan, error) {
	ctx, span := otel.Tracer("generator").Start(ctx, "generation.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("generation.provider", g.completer.Name()),
		attribute.String("generation.model", g.completer.Model()),
		attribute.Int("generation.interests", len(interests)),
	)

	prompt := BuildPrompt(interests)

	start := time.Now()
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.completer.Complete(ctx, prompt)
	})
	g.metrics.RecordGeneration(ctx, g.completer.Name(), err == nil, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			span.SetAttributes(attribute.Bool("generation.circuit_breaker_open", true))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, &GenerationError{Provider: g.completer.Name(), Err: err}
	}

	output, _ := result.(string)
	parsed := ParsePlan(output)
	if !parsed.OK {
		logger.Warn("Completion was not valid JSON", "provider", g.completer.Name(), "length", len(output))
		span.SetStatus(codes.Error, parsed.Reason)
		return nil, &GenerationError{Provider: g.completer.Name(), Err: ErrInvalidJSON}
	}

	span.SetAttributes(
		attribute.String("generation.parse_attempt", parsed.Attempt),
		attribute.Int("generation.platforms", len(parsed.Plan)),
	)
	return parsed.Plan, nil
}
