package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Aixtrade/Tally/internal/domain/job"
	"github.com/Aixtrade/Tally/internal/infrastructure/observability/metrics"
	asynqqueue "github.com/Aixtrade/Tally/internal/infrastructure/queue/asynq"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
	"github.com/Aixtrade/Tally/pkg/payload"
	"github.com/Aixtrade/Tally/pkg/tasktype"
)

type QueueClient interface {
	Enqueue(ctx context.Context, j *job.Job, opts ...asynqqueue.EnqueueOptions) (*asynq.TaskInfo, error)
	GetTaskInfo(queue, taskID string) (*asynq.TaskInfo, error)
	CancelTask(taskID string) error
	DeleteTask(queue, taskID string) error
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	GetAllQueueStats() ([]asynqqueue.QueueStats, error)
}

// ProgressStore drops the progress stream of a deleted job.
type ProgressStore interface {
	Delete(ctx context.Context, jobID string) error
}

type Options struct {
	Queues    []string
	Retention time.Duration
}

type Service struct {
	client    QueueClient
	progress  ProgressStore
	logger    *zap.Logger
	queues    map[string]struct{}
	retention time.Duration
}

func NewService(client QueueClient, progress ProgressStore, logger *zap.Logger, opts Options) *Service {
	queues := make(map[string]struct{}, len(opts.Queues))
	for _, q := range opts.Queues {
		queues[q] = struct{}{}
	}
	return &Service{
		client:    client,
		progress:  progress,
		logger:    logger,
		queues:    queues,
		retention: opts.Retention,
	}
}

type EnqueueJobResult struct {
	JobID  string `json:"job_id"`
	Queue  string `json:"queue"`
	Status string `json:"status"`
}

func (s *Service) EnqueueJob(ctx context.Context, cmd *EnqueueJobCommand) (*EnqueueJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	j, err := job.NewJob(tasktype.Aggregate, payload.AggregatePayload{Data: cmd.Data})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err)
	}
	j.ID = uuid.New().String()
	j.Retention = s.retention

	if cmd.Queue != "" {
		if !s.knownQueue(cmd.Queue) {
			return nil, apperrors.ErrInvalidQueue
		}
		j.Queue = cmd.Queue
	}

	info, err := s.client.Enqueue(ctx, j)
	if err != nil {
		s.logger.Error("failed to enqueue job",
			zap.String("job_id", j.ID),
			zap.Error(err),
		)
		return nil, mapQueueError(err)
	}

	metrics.RecordJobEnqueued(info.Queue)
	s.logger.Info("job enqueued",
		zap.String("job_id", info.ID),
		zap.String("queue", info.Queue),
		zap.Int("elements", len(cmd.Data)),
	)

	return &EnqueueJobResult{
		JobID:  info.ID,
		Queue:  info.Queue,
		Status: info.State.String(),
	}, nil
}

type JobInfo struct {
	ID          string                   `json:"id"`
	Queue       string                   `json:"queue"`
	Type        string                   `json:"type"`
	State       string                   `json:"state"`
	MaxRetry    int                      `json:"max_retry"`
	Retried     int                      `json:"retried"`
	LastErr     string                   `json:"last_err,omitempty"`
	CompletedAt string                   `json:"completed_at,omitempty"`
	Result      *payload.AggregateResult `json:"result,omitempty"`
}

func (s *Service) GetJob(ctx context.Context, query *GetJobQuery) (*JobInfo, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	info, err := s.client.GetTaskInfo(query.Queue, query.JobID)
	if err != nil {
		return nil, mapQueueError(err)
	}

	result := &JobInfo{
		ID:       info.ID,
		Queue:    info.Queue,
		Type:     info.Type,
		State:    info.State.String(),
		MaxRetry: info.MaxRetry,
		Retried:  info.Retried,
		LastErr:  info.LastErr,
	}

	if !info.CompletedAt.IsZero() {
		result.CompletedAt = info.CompletedAt.Format(time.RFC3339)
	}

	if len(info.Result) > 0 {
		var r payload.AggregateResult
		if err := json.Unmarshal(info.Result, &r); err != nil {
			s.logger.Warn("failed to decode job result",
				zap.String("job_id", info.ID),
				zap.Error(err),
			)
		} else {
			result.Result = &r
		}
	}

	return result, nil
}

func (s *Service) CancelJob(ctx context.Context, cmd *CancelJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := s.client.CancelTask(cmd.JobID); err != nil {
		s.logger.Error("failed to cancel job",
			zap.String("job_id", cmd.JobID),
			zap.Error(err),
		)
		return mapQueueError(err)
	}

	s.logger.Info("job cancelled", zap.String("job_id", cmd.JobID))
	return nil
}

func (s *Service) DeleteJob(ctx context.Context, cmd *DeleteJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := s.client.DeleteTask(cmd.Queue, cmd.JobID); err != nil {
		s.logger.Error("failed to delete job",
			zap.String("job_id", cmd.JobID),
			zap.String("queue", cmd.Queue),
			zap.Error(err),
		)
		return mapQueueError(err)
	}

	if s.progress != nil {
		if err := s.progress.Delete(ctx, cmd.JobID); err != nil {
			s.logger.Warn("failed to delete job progress",
				zap.String("job_id", cmd.JobID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("job deleted",
		zap.String("job_id", cmd.JobID),
		zap.String("queue", cmd.Queue),
	)
	return nil
}

func (s *Service) GetQueueStats(ctx context.Context, query *GetQueueStatsQuery) ([]asynqqueue.QueueStats, error) {
	if query.Queue != "" {
		info, err := s.client.GetQueueInfo(query.Queue)
		if err != nil {
			return nil, mapQueueError(err)
		}
		return []asynqqueue.QueueStats{asynqqueue.NewQueueStats(info)}, nil
	}

	return s.client.GetAllQueueStats()
}

func (s *Service) knownQueue(queue string) bool {
	if len(s.queues) == 0 {
		return true
	}
	_, ok := s.queues[queue]
	return ok
}

func mapQueueError(err error) error {
	switch {
	case errors.Is(err, asynq.ErrTaskIDConflict), errors.Is(err, asynq.ErrDuplicateTask):
		return fmt.Errorf("%w: %v", apperrors.ErrJobAlreadyExists, err)
	case errors.Is(err, asynq.ErrTaskNotFound), errors.Is(err, asynq.ErrQueueNotFound):
		return fmt.Errorf("%w: %v", apperrors.ErrJobNotFound, err)
	default:
		return err
	}
}
