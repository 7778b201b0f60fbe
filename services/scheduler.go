package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"social-media-agent/internal/logger"
	"social-media-agent/models"
)

// DailyJobTag identifies the only trigger the scheduler ever holds.
const DailyJobTag = "daily_job"

// Scheduler owns the daily trigger. Replacing the trigger happens under one
// lock so observers never see zero or two jobs mid-replacement.
type Scheduler struct {
	mu       sync.Mutex
	cron     *gocron.Scheduler
	job      PlanJob
	at       string
	location *time.Location
	current  *models.UserConfig
}

func NewScheduler(location *time.Location, at string, job PlanJob) *Scheduler {
	s := gocron.NewScheduler(location)
	s.TagsUnique()

	return &Scheduler{
		cron:     s,
		job:      job,
		at:       at,
		location: location,
	}
}

// Reconfigure drops any existing trigger and installs one firing daily at the
// configured time, bound to a copy of cfg. The background executor is started
// on first use.
func (s *Scheduler) Reconfigure(cfg models.UserConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Clear()
	s.current = nil

	bound := models.UserConfig{
		Email:     cfg.Email,
		Interests: append([]string{}, cfg.Interests...),
	}
	if _, err := s.cron.Every(1).Day().At(s.at).Tag(DailyJobTag).Do(s.fire, bound); err != nil {
		return fmt.Errorf("schedule daily job: %w", err)
	}
	s.current = &bound

	if !s.cron.IsRunning() {
		s.cron.StartAsync()
	}

	logger.Info("Daily plan scheduled", "at", s.at, "timezone", s.location.String(), "interests", len(bound.Interests))
	return nil
}

// Stop removes the trigger and halts the executor.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Clear()
	s.current = nil
	if s.cron.IsRunning() {
		s.cron.Stop()
	}
}

// Current returns the config the active trigger is bound to.
func (s *Scheduler) Current() (models.UserConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.UserConfig{}, false
	}
	return models.UserConfig{
		Email:     s.current.Email,
		Interests: append([]string{}, s.current.Interests...),
	}, true
}

func (s *Scheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cron.Jobs())
}

func (s *Scheduler) NextRun() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunLocked()
}

func (s *Scheduler) nextRunLocked() (time.Time, bool) {
	jobs, err := s.cron.FindJobsByTag(DailyJobTag)
	if err != nil || len(jobs) == 0 {
		return time.Time{}, false
	}
	next := jobs[0].NextRun()
	if next.IsZero() {
		return time.Time{}, false
	}
	return next.In(s.location), true
}

// Status is a consistent snapshot of the trigger, taken under one lock.
func (s *Scheduler) Status() models.ScheduleStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := models.ScheduleStatus{
		Jobs:     len(s.cron.Jobs()),
		At:       s.at,
		Timezone: s.location.String(),
	}
	if s.current != nil {
		cfg := models.UserConfig{
			Email:     s.current.Email,
			Interests: append([]string{}, s.current.Interests...),
		}
		status.Active = true
		status.Config = &cfg
	}
	if next, ok := s.nextRunLocked(); ok {
		status.NextRun = next.Format(time.RFC3339)
	}
	return status
}

func (s *Scheduler) fire(cfg models.UserConfig) {
	if _, err := s.job.Run(context.Background(), models.TriggerScheduled, cfg.Email, cfg.Interests); err != nil {
		logger.Error("Scheduled plan job failed to record its outcome", "error", err)
	}
}
