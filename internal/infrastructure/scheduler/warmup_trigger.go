package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultWarmupInterval = 5 * time.Minute

// WarmupTrigger asks the scheduler for a full dashboard warm-up when it
// starts and then once per interval.
type WarmupTrigger struct {
	interval  time.Duration
	scheduler *Scheduler
	logger    *zap.Logger
	life      lifecycle
}

func NewWarmupTrigger(interval time.Duration, scheduler *Scheduler, logger *zap.Logger) *WarmupTrigger {
	if interval <= 0 {
		interval = defaultWarmupInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarmupTrigger{interval: interval, scheduler: scheduler, logger: logger}
}

func (t *WarmupTrigger) Start(ctx context.Context) error {
	if t.life.start(ctx, 1, nil, t.loop) {
		t.logger.Info("Dashboard warm-up trigger started", zap.Duration("interval", t.interval))
	}
	return nil
}

func (t *WarmupTrigger) Stop(ctx context.Context) error {
	stopped, err := t.life.stop(ctx, nil)
	if stopped && err == nil {
		t.logger.Info("Dashboard warm-up trigger stopped")
	}
	return err
}

func (t *WarmupTrigger) loop(ctx context.Context, _ int) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if err := t.scheduler.ScheduleWarmup(); err != nil {
			t.logger.Warn("Failed to schedule dashboard warm-up", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
