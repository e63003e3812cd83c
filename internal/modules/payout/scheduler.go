package payout

import (
	"context"
	"time"
)

// dueWeekly reports whether the weekly run is due at now: the configured
// weekday and hour in business time, not yet run for that day.
func (s *Service) dueWeekly(now time.Time, lastRun time.Time) bool {
	local := now.In(s.loc)
	if local.Weekday() != s.policy.WeeklyDay || local.Hour() < s.policy.WeeklyHour {
		return false
	}
	if lastRun.IsZero() {
		return true
	}
	last := lastRun.In(s.loc)
	return last.Year() != local.Year() || last.YearDay() != local.YearDay()
}

// RunWeeklyScheduler checks every interval and runs the weekly batch once
// per scheduled day. It returns when ctx is done.
func (s *Service) RunWeeklyScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastRun time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.now()
			if !s.dueWeekly(now, lastRun) {
				continue
			}
			lastRun = now
			if _, err := s.RunWeeklyPayouts(ctx); err != nil {
				s.loggerf("level=error msg=weekly_scheduler_run_failed err=%q", err.Error())
			}
		}
	}
}
