package asynq

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Aixtrade/Tally/internal/config"
	"github.com/Aixtrade/Tally/internal/domain/job"
)

type Client struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

func NewClient(cfg *config.RedisConfig) (*Client, error) {
	redisOpt := RedisOpt(cfg)

	return &Client{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
	}, nil
}

func RedisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func (c *Client) Close() error {
	if err := c.inspector.Close(); err != nil {
		c.client.Close()
		return err
	}
	return c.client.Close()
}

type EnqueueOptions struct {
	Queue      string
	MaxRetries int
	Timeout    time.Duration
	Retention  time.Duration
	TaskID     string
}

func DefaultEnqueueOptions() EnqueueOptions {
	return EnqueueOptions{
		Queue:      "default",
		MaxRetries: 3,
		Timeout:    10 * time.Minute,
		Retention:  24 * time.Hour,
	}
}

// Enqueue submits j. Non-zero fields on j override opts.
func (c *Client) Enqueue(ctx context.Context, j *job.Job, opts ...EnqueueOptions) (*asynq.TaskInfo, error) {
	opt := DefaultEnqueueOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	if j.Queue != "" {
		opt.Queue = j.Queue
	}
	if j.MaxRetries > 0 {
		opt.MaxRetries = j.MaxRetries
	}
	if j.Timeout > 0 {
		opt.Timeout = j.Timeout
	}
	if j.Retention > 0 {
		opt.Retention = j.Retention
	}

	asynqOpts := []asynq.Option{
		asynq.Queue(opt.Queue),
		asynq.MaxRetry(opt.MaxRetries),
		asynq.Timeout(opt.Timeout),
	}

	if opt.Retention > 0 {
		asynqOpts = append(asynqOpts, asynq.Retention(opt.Retention))
	}

	if opt.TaskID != "" {
		asynqOpts = append(asynqOpts, asynq.TaskID(opt.TaskID))
	} else if j.ID != "" {
		asynqOpts = append(asynqOpts, asynq.TaskID(j.ID))
	}

	task := asynq.NewTask(j.Type.String(), j.Payload)

	return c.client.EnqueueContext(ctx, task, asynqOpts...)
}

func (c *Client) CancelTask(taskID string) error {
	return c.inspector.CancelProcessing(taskID)
}

func (c *Client) DeleteTask(queue, taskID string) error {
	return c.inspector.DeleteTask(queue, taskID)
}

func (c *Client) GetTaskInfo(queue, taskID string) (*asynq.TaskInfo, error) {
	return c.inspector.GetTaskInfo(queue, taskID)
}

func (c *Client) GetQueueInfo(queue string) (*asynq.QueueInfo, error) {
	return c.inspector.GetQueueInfo(queue)
}

type QueueStats struct {
	Queue     string `json:"queue"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
	Completed int    `json:"completed"`
}

func NewQueueStats(info *asynq.QueueInfo) QueueStats {
	return QueueStats{
		Queue:     info.Queue,
		Pending:   info.Pending,
		Active:    info.Active,
		Scheduled: info.Scheduled,
		Retry:     info.Retry,
		Archived:  info.Archived,
		Completed: info.Completed,
	}
}

func (c *Client) GetAllQueueStats() ([]QueueStats, error) {
	queues, err := c.inspector.Queues()
	if err != nil {
		return nil, err
	}

	stats := make([]QueueStats, 0, len(queues))
	for _, q := range queues {
		info, err := c.inspector.GetQueueInfo(q)
		if err != nil {
			continue
		}
		stats = append(stats, NewQueueStats(info))
	}

	return stats, nil
}
