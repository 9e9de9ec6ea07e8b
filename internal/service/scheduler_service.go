package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
	log  hclog.Logger
}

func NewSchedulerService(loc *time.Location, log hclog.Logger) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		log:  log.Named("scheduler"),
	}
}

// ScheduleStreakDecay runs streaks.DecayAll on spec, a six-field cron
// expression evaluated in the reference zone.
func (s *SchedulerService) ScheduleStreakDecay(spec string, streaks *StreakService) (cron.EntryID, error) {
	if spec == "" {
		return 0, fmt.Errorf("empty schedule")
	}
	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := streaks.DecayAll(ctx)
		if err != nil {
			s.log.Error("streak decay sweep failed", "error", err)
			return
		}
		s.log.Info("streak decay sweep done", "reset", n)
	})
	if err != nil {
		return 0, fmt.Errorf("schedule streak decay %q: %w", spec, err)
	}
	return id, nil
}

// Entries returns the number of registered jobs.
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
