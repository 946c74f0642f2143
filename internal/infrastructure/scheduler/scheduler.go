// Package scheduler keeps the owner dashboard warm by recomputing its cached
// read models on a fixed interval through a small worker pool.
package scheduler

import (
	"context"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const queueSize = 64

// Scheduler runs submitted jobs on MaxConcurrentJobs workers and re-queues
// failed ones after RetryDelay until their retries run out.
type Scheduler struct {
	config   config.SchedulerConfig
	executor JobExecutor
	logger   *zap.Logger

	life    lifecycle
	jobs    chan *Job                 // guarded by life.mu
	retries map[uuid.UUID]*time.Timer // guarded by life.mu
}

func NewScheduler(cfg config.SchedulerConfig, executor JobExecutor, logger *zap.Logger) *Scheduler {
	cfg.MaxConcurrentJobs = max(cfg.MaxConcurrentJobs, 1)
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		config:   cfg,
		executor: executor,
		logger:   logger.Named("scheduler"),
		retries:  make(map[uuid.UUID]*time.Timer),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	jobs := make(chan *Job, queueSize)
	started := s.life.start(ctx, s.config.MaxConcurrentJobs,
		func() { s.jobs = jobs },
		func(ctx context.Context, id int) { s.work(ctx, id, jobs) },
	)
	if started {
		s.logger.Info("Dashboard scheduler started",
			zap.Int("workers", s.config.MaxConcurrentJobs),
			zap.Duration("job_timeout", s.config.JobTimeout))
	}
	return nil
}

// Stop drops pending retries, closes the queue and waits for the workers.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped, err := s.life.stop(ctx, func() {
		for id, timer := range s.retries {
			timer.Stop()
			delete(s.retries, id)
		}
		close(s.jobs)
	})
	switch {
	case err != nil:
		s.logger.Warn("Dashboard scheduler stop timed out")
	case stopped:
		s.logger.Info("Dashboard scheduler stopped")
	}
	return err
}

func (s *Scheduler) IsRunning() bool {
	return s.life.isRunning()
}

// SubmitJob queues job without blocking.
func (s *Scheduler) SubmitJob(job *Job) error {
	s.life.mu.Lock()
	defer s.life.mu.Unlock()
	if !s.life.running {
		return ErrSchedulerNotRunning
	}
	select {
	case s.jobs <- job:
	default:
		return ErrJobQueueFull
	}
	s.logger.Debug("Job submitted", jobFields(job)...)
	return nil
}

// ScheduleWarmup submits a refresh of every dashboard view.
func (s *Scheduler) ScheduleWarmup() error {
	for _, job := range WarmupJobs(s.config.RetryAttempts) {
		if err := s.SubmitJob(job); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) work(ctx context.Context, id int, jobs <-chan *Job) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			s.run(ctx, id, job)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, worker int, job *Job) {
	ctx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "refresh",
		telemetry.WithAttribute(telemetry.SpanAttrJobID, job.ID),
		telemetry.WithAttribute(telemetry.SpanAttrJobKind, string(job.Kind)),
		telemetry.WithAttribute(telemetry.SpanAttrJobPeriod, string(job.Period)),
		telemetry.WithAttribute(telemetry.SpanAttrJobAttempt, job.RetryCount+1),
	)

	job.Start()
	err := s.executor.Execute(ctx, job)
	telemetry.EndSpan(span, &err)

	log := s.logger.With(append(jobFields(job), zap.Int("worker", worker))...)
	if err == nil {
		job.Complete()
		log.Debug("Job completed", zap.Duration("took", job.Took()))
		return
	}

	job.Fail(err.Error())
	log.Error("Job failed", zap.Int("attempt", job.RetryCount+1), zap.Error(err))
	if job.ShouldRetry() {
		job.ScheduleRetry(s.config.RetryDelay)
		s.retryLater(job)
	}
}

// retryLater re-submits job once its NextRetryAt has passed.
func (s *Scheduler) retryLater(job *Job) {
	s.life.mu.Lock()
	defer s.life.mu.Unlock()
	if !s.life.running {
		return
	}

	s.logger.Info("Job scheduled for retry",
		zap.String("job_id", job.ID.String()),
		zap.Int("retry_count", job.RetryCount),
		zap.Int("max_retries", job.MaxRetries))
	s.retries[job.ID] = time.AfterFunc(time.Until(*job.NextRetryAt), func() {
		s.life.mu.Lock()
		delete(s.retries, job.ID)
		s.life.mu.Unlock()

		if err := s.SubmitJob(job); err != nil {
			s.logger.Warn("Failed to re-queue job", zap.String("job_id", job.ID.String()), zap.Error(err))
		}
	})
}

func jobFields(job *Job) []zap.Field {
	fields := []zap.Field{
		zap.String("job_id", job.ID.String()),
		zap.String("kind", string(job.Kind)),
	}
	if job.Period != "" {
		fields = append(fields, zap.String("period", string(job.Period)))
	}
	return fields
}
