package scheduler

import (
	"context"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/report"
	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobKind names the dashboard view a job refreshes.
type JobKind string

const (
	JobKindOrderStats  JobKind = "ORDER_STATS"
	JobKindTopProducts JobKind = "TOP_PRODUCTS"
	JobKindOverview    JobKind = "OVERVIEW"
)

// Job is one dashboard refresh. Period is set for order statistics only.
type Job struct {
	ID          uuid.UUID
	Kind        JobKind
	Period      report.Period
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
	NextRetryAt *time.Time
}

func NewJob(kind JobKind, period report.Period, maxRetries int) *Job {
	return &Job{
		ID:         uuid.New(),
		Kind:       kind,
		Period:     period,
		Status:     JobStatusPending,
		MaxRetries: maxRetries,
	}
}

// WarmupJobs covers every cached dashboard view: order statistics for each
// period, then top products and the overview.
func WarmupJobs(maxRetries int) []*Job {
	var jobs []*Job
	for _, p := range report.AllPeriods() {
		jobs = append(jobs, NewJob(JobKindOrderStats, p, maxRetries))
	}
	return append(jobs,
		NewJob(JobKindTopProducts, "", maxRetries),
		NewJob(JobKindOverview, "", maxRetries),
	)
}

func (j *Job) Start() {
	now := time.Now()
	j.Status, j.StartedAt, j.Error = JobStatusRunning, &now, ""
}

func (j *Job) Complete() {
	j.finish(JobStatusSuccess, "")
}

func (j *Job) Fail(reason string) {
	j.finish(JobStatusFailed, reason)
}

func (j *Job) finish(status JobStatus, reason string) {
	now := time.Now()
	j.Status, j.CompletedAt, j.Error = status, &now, reason
}

// Took is the run time of a finished job.
func (j *Job) Took() time.Duration {
	if j.StartedAt == nil || j.CompletedAt == nil {
		return 0
	}
	return j.CompletedAt.Sub(*j.StartedAt)
}

func (j *Job) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry returns a failed job to pending, due after delay.
func (j *Job) ScheduleRetry(delay time.Duration) {
	due := time.Now().Add(delay)
	j.RetryCount++
	j.Status, j.NextRetryAt, j.Error = JobStatusPending, &due, ""
}

type JobExecutor interface {
	Execute(ctx context.Context, job *Job) error
}
