// services/scheduler.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// GenerationScheduler runs Generator.GenerateAll on a fixed interval.
type GenerationScheduler struct {
	gen        *Generator
	clock      clockwork.Clock
	interval   time.Duration
	runOnStart bool
	timeout    time.Duration

	sched gocron.Scheduler
}

func NewGenerationScheduler(gen *Generator, clock clockwork.Clock, interval time.Duration, runOnStart bool) *GenerationScheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &GenerationScheduler{
		gen:        gen,
		clock:      clock,
		interval:   interval,
		runOnStart: runOnStart,
		timeout:    5 * time.Minute,
	}
}

// Start registers the generation job and starts the scheduler.
func (s *GenerationScheduler) Start() error {
	sched, err := gocron.NewScheduler(
		gocron.WithClock(s.clock),
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	opts := []gocron.JobOption{
		gocron.WithName("generate-series-and-answers"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if s.runOnStart {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	// Every interval: extend series, then answers
	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			if _, err := s.RunNow(ctx); err != nil {
				log.Printf("[Scheduler] generation finished with errors: %v", err)
			}
		}),
		opts...,
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("failed to register generation job: %w", err)
	}

	sched.Start()
	s.sched = sched
	log.Printf("[Scheduler] ⏰ generation every %s", s.interval)
	return nil
}

// RunNow runs one generation pass at the current hour.
func (s *GenerationScheduler) RunNow(ctx context.Context) (GenerationReport, error) {
	now := RoundToHour(s.clock.Now())
	report, err := s.gen.GenerateAll(ctx, now)
	log.Printf("[Scheduler] ✅ run at %s: %d league(s), %d series, %d answer(s)",
		now.Format(time.RFC3339), report.Leagues, report.Series, report.Answers)
	return report, err
}

// Stop shuts the scheduler down, waiting for a running job.
func (s *GenerationScheduler) Stop() error {
	if s.sched == nil {
		return nil
	}
	return s.sched.Shutdown()
}
