package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"social-media-agent/internal/logger"
	"social-media-agent/internal/telemetry"
	"social-media-agent/models"
)

type PlanGenerator interface {
	Generate(ctx context.Context, interests []string) (models.ContentPlan, error)
}

type PlanRenderer interface {
	Render(plan models.ContentPlan, interests []string) (string, error)
}

type RunLogWriter interface {
	SaveRunLog(ctx context.Context, log models.RunLog) error
}

// PlanJob is the unit of work shared by the scheduled trigger and "run now".
type PlanJob interface {
	Run(ctx context.Context, trigger, email string, interests []string) (models.RunLog, error)
}

// JobRunner generates, renders and mails one plan and records the outcome.
type JobRunner struct {
	mu        sync.Mutex
	generator PlanGenerator
	renderer  PlanRenderer
	sender    Sender
	logs      RunLogWriter
	metrics   *telemetry.Metrics
	now       func() time.Time
}

func NewJobRunner(generator PlanGenerator, renderer PlanRenderer, sender Sender, logs RunLogWriter, metrics *telemetry.Metrics) *JobRunner {
	return &JobRunner{
		generator: generator,
		renderer:  renderer,
		sender:    sender,
		logs:      logs,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Run executes the pipeline once. Pipeline failures end up in the returned
// RunLog; the error is non-nil only when the RunLog could not be persisted.
// The RunLog is written exactly once per call, whatever the outcome.
// Concurrent calls are serialized.
func (r *JobRunner) Run(ctx context.Context, trigger, email string, interests []string) (runLog models.RunLog, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := otel.Tracer("job").Start(ctx, "job.run")
	defer span.End()

	runLog = models.RunLog{
		RunID:     uuid.NewString(),
		Trigger:   trigger,
		Email:     email,
		Interests: append([]string{}, interests...),
		StartedAt: r.now(),
	}
	span.SetAttributes(
		attribute.String("job.run_id", runLog.RunID),
		attribute.String("job.trigger", trigger),
	)
	logger.Info("Plan job started", "run_id", runLog.RunID, "trigger", trigger, "interests", len(interests))

	defer func() {
		if p := recover(); p != nil {
			runLog.Status = models.RunStatusError
			runLog.Error = fmt.Sprintf("panic: %v", p)
		}

		runLog.EndedAt = r.now()
		if runLog.EndedAt.Before(runLog.StartedAt) {
			runLog.EndedAt = runLog.StartedAt
		}

		if saveErr := r.logs.SaveRunLog(context.WithoutCancel(ctx), runLog); saveErr != nil {
			logger.Error("Failed to persist run log", "run_id", runLog.RunID, "error", saveErr)
			err = fmt.Errorf("persist run log: %w", saveErr)
		}

		r.metrics.RecordJob(ctx, trigger, runLog.Status, runLog.EndedAt.Sub(runLog.StartedAt).Seconds())
		if runLog.Status == models.RunStatusError {
			span.SetStatus(codes.Error, runLog.Error)
		}
		logger.Info("Plan job finished", "run_id", runLog.RunID, "status", runLog.Status, "error", runLog.Error)
	}()

	if pipeErr := r.execute(ctx, email, interests); pipeErr != nil {
		runLog.Status = models.RunStatusError
		runLog.Error = pipeErr.Error()
		return runLog, nil
	}

	runLog.Status = models.RunStatusSuccess
	return runLog, nil
}

// execute runs generating -> rendering -> sending. The email is only handed
// to the sender once the whole body has been rendered.
func (r *JobRunner) execute(ctx context.Context, email string, interests []string) error {
	logger.Debug("Generating plan", "email", email)
	plan, err := r.generator.Generate(ctx, interests)
	if err != nil {
		return err
	}

	logger.Debug("Rendering plan", "platforms", len(plan))
	htmlBody, err := r.renderer.Render(plan, interests)
	if err != nil {
		return err
	}

	logger.Debug("Sending plan", "email", email)
	if err := r.sender.Send(ctx, email, PlanSubject(interests), htmlBody); err != nil {
		return err
	}
	r.metrics.RecordEmailSent(ctx)

	return nil
}
