package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Aixtrade/Tally/internal/infrastructure/observability/metrics"
)

func LoggingMiddleware(logger *zap.Logger) asynq.MiddlewareFunc {
	return func(h asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()
			taskID := GetTaskID(ctx)

			logger.Info("processing task",
				zap.String("type", t.Type()),
				zap.String("task_id", taskID),
				zap.String("queue", GetQueueName(ctx)),
				zap.Int("retry", GetRetryCount(ctx)),
			)

			err := h.ProcessTask(ctx, t)

			duration := time.Since(start)
			if err != nil {
				logger.Error("task failed",
					zap.String("type", t.Type()),
					zap.String("task_id", taskID),
					zap.Duration("duration", duration),
					zap.Error(err),
				)
			} else {
				logger.Info("task completed",
					zap.String("type", t.Type()),
					zap.String("task_id", taskID),
					zap.Duration("duration", duration),
				)
			}

			return err
		})
	}
}

func RecoveryMiddleware(logger *zap.Logger) asynq.MiddlewareFunc {
	return func(h asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("task panic recovered",
						zap.String("type", t.Type()),
						zap.String("task_id", GetTaskID(ctx)),
						zap.Any("panic", r),
					)
					err = fmt.Errorf("panic: %v: %w", r, asynq.SkipRetry)
				}
			}()

			return h.ProcessTask(ctx, t)
		})
	}
}

func MetricsMiddleware() asynq.MiddlewareFunc {
	return func(h asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()
			err := h.ProcessTask(ctx, t)

			status := "success"
			switch {
			case errors.Is(err, asynq.SkipRetry):
				status = "rejected"
			case err != nil:
				status = "failed"
			}

			metrics.RecordTaskProcessed(t.Type(), status)
			metrics.RecordTaskDuration(t.Type(), time.Since(start).Seconds())
			return err
		})
	}
}
