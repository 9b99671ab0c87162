package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/odyssey-console/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// LookupCache is the part of the lookup cache the warmup job drives.
type LookupCache interface {
	Warm(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// LookupWarmupJob loads lookup collections so page renders never wait on the backend.
type LookupWarmupJob struct {
	Cache   LookupCache
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	Timeout time.Duration
}

// NewLookupWarmupJob wires dependencies for the warmup handler.
func NewLookupWarmupJob(cache LookupCache, logger *slog.Logger, metrics *jobmetrics.Metrics) *LookupWarmupJob {
	return &LookupWarmupJob{Cache: cache, Logger: logger, Metrics: metrics, Timeout: time.Minute}
}

// Handle processes lookup warmup tasks.
func (j *LookupWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Cache == nil {
		return errors.New("lookup warmup: handler not configured")
	}
	var payload LookupWarmupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	tracker := j.metrics().Track(TaskLookupWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	logger := j.logger().With(slog.Bool("invalidate", payload.Invalidate))
	if payload.Reason != "" {
		logger = logger.With(slog.String("reason", payload.Reason))
	}
	start := time.Now()

	var err error
	if payload.Invalidate {
		err = j.Cache.Refresh(ctx)
	} else {
		err = j.Cache.Warm(ctx)
	}
	if err != nil {
		logger.Error("lookup warmup failed", slog.Any("error", err))
		return err
	}
	logger.Info("lookup warmup completed", slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *LookupWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLookupWarmup))
	}
	return slog.Default().With(slog.String("job", TaskLookupWarmup))
}

func (j *LookupWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
