package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Sweeper periodically drops expired sessions.
type Sweeper struct {
	scheduler gocron.Scheduler
}

// StartSweeper schedules Registry.Sweep every interval and starts the scheduler.
func StartSweeper(reg *Registry, interval time.Duration, logger *slog.Logger) (*Sweeper, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(schedulerLogger{logger: logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if n := reg.Sweep(); n > 0 {
				logger.Info("expired sessions swept", "removed", n, "remaining", reg.Len())
			}
		}),
		gocron.WithName("session-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule sweep: %w", err)
	}

	s.Start()
	logger.Info("session sweeper started", "interval", interval.String())
	return &Sweeper{scheduler: s}, nil
}

// Stop shuts the scheduler down, waiting for a running sweep to finish.
func (sw *Sweeper) Stop() error {
	if err := sw.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}

// schedulerLogger routes gocron's logs through slog.
type schedulerLogger struct {
	logger *slog.Logger
}

func (l schedulerLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l schedulerLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l schedulerLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l schedulerLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
