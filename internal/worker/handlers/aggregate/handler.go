package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	dataapp "github.com/Aixtrade/Tally/internal/application/data"
	"github.com/Aixtrade/Tally/internal/domain/data"
	"github.com/Aixtrade/Tally/internal/infrastructure/observability/metrics"
	"github.com/Aixtrade/Tally/internal/worker"
	"github.com/Aixtrade/Tally/pkg/jsonvalue"
	"github.com/Aixtrade/Tally/pkg/payload"
	"github.com/Aixtrade/Tally/pkg/progress"
	"github.com/Aixtrade/Tally/pkg/tasktype"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type ProgressPublisher interface {
	Publish(ctx context.Context, prog *progress.Progress) error
	PublishCompletion(ctx context.Context, jobID, status, message, result string) error
}

type Handler struct {
	*worker.BaseHandler
	publisher ProgressPublisher
	chunkSize int
}

// NewHandler builds the batch aggregation handler. publisher may be nil.
func NewHandler(logger *zap.Logger, publisher ProgressPublisher, chunkSize int) *Handler {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	return &Handler{
		BaseHandler: worker.NewBaseHandler(logger),
		publisher:   publisher,
		chunkSize:   chunkSize,
	}
}

func (h *Handler) Type() string {
	return tasktype.Aggregate.String()
}

func (h *Handler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	jobID := worker.GetTaskID(ctx)

	p, err := worker.UnmarshalPayload[payload.AggregatePayload](task)
	if err != nil {
		h.LogTaskError(h.Type(), jobID, err)
		h.complete(ctx, jobID, StatusFailed, "invalid payload: "+err.Error(), "")
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	start := time.Now()
	res, err := h.aggregate(ctx, jobID, p.Data)
	metrics.RecordAggregation(dataapp.TransportJob, dataapp.Outcome(err), time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		h.complete(ctx, jobID, StatusFailed, err.Error(), "")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	out, err := json.Marshal(payload.AggregateResult{
		JobID:     jobID,
		StringLen: res.StringCount,
		IntSum:    res.IntegerSum,
		Elements:  len(p.Data),
	})
	if err != nil {
		return err
	}

	if w := task.ResultWriter(); w != nil {
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	h.complete(ctx, jobID, StatusCompleted, "", string(out))
	return nil
}

// aggregate folds values chunk by chunk, reporting progress after each one.
func (h *Handler) aggregate(ctx context.Context, jobID string, values []jsonvalue.Value) (data.Result, error) {
	acc := data.NewAccumulator()
	total := len(values)

	for start := 0; start < total; start += h.chunkSize {
		if err := ctx.Err(); err != nil {
			return data.Result{}, err
		}

		end := start + h.chunkSize
		if end > total {
			end = total
		}
		if err := acc.AddAll(values[start:end]); err != nil {
			return data.Result{}, err
		}

		h.publish(ctx, progress.NewProgress(jobID, end, total, "aggregating"))
	}

	return acc.Result()
}

func (h *Handler) publish(ctx context.Context, prog *progress.Progress) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, prog); err != nil {
		h.Logger().Warn("failed to publish progress",
			zap.String("job_id", prog.JobID),
			zap.Error(err),
		)
	}
}

func (h *Handler) complete(ctx context.Context, jobID, status, message, result string) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishCompletion(ctx, jobID, status, message, result); err != nil {
		h.Logger().Warn("failed to publish completion",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
	}
}
