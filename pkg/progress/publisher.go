package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher appends progress to Redis streams.
type Publisher struct {
	redis   *redis.Client
	logger  *zap.Logger
	options StreamOptions
}

func NewPublisher(redisClient *redis.Client, logger *zap.Logger, opts ...StreamOptions) *Publisher {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	return &Publisher{
		redis:   redisClient,
		logger:  logger,
		options: opt,
	}
}

func (p *Publisher) Publish(ctx context.Context, prog *Progress) error {
	if prog == nil {
		return fmt.Errorf("progress cannot be nil")
	}

	values := map[string]interface{}{
		"job_id":       prog.JobID,
		"processed":    prog.Processed,
		"total":        prog.Total,
		"percentage":   prog.Percentage,
		"stage":        prog.Stage,
		"message":      prog.Message,
		"timestamp_ms": prog.TimestampMs,
	}

	id, err := p.add(ctx, prog.JobID, values)
	if err != nil {
		p.logger.Error("failed to publish progress",
			zap.String("job_id", prog.JobID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish progress: %w", err)
	}

	p.logger.Debug("progress published",
		zap.String("job_id", prog.JobID),
		zap.String("stream_id", id),
		zap.Int32("percentage", prog.Percentage),
	)
	return nil
}

// PublishCompletion writes the final message. result is the result JSON, empty on failure.
func (p *Publisher) PublishCompletion(ctx context.Context, jobID, status, message, result string) error {
	values := map[string]interface{}{
		"job_id":       jobID,
		"percentage":   100,
		"stage":        "done",
		"message":      message,
		"status":       status,
		"result":       result,
		"timestamp_ms": time.Now().UnixMilli(),
		"is_final":     "true",
	}

	if _, err := p.add(ctx, jobID, values); err != nil {
		p.logger.Error("failed to publish completion",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish completion: %w", err)
	}

	p.logger.Debug("completion published",
		zap.String("job_id", jobID),
		zap.String("status", status),
	)
	return nil
}

func (p *Publisher) add(ctx context.Context, jobID string, values map[string]interface{}) (string, error) {
	key := StreamKey(jobID)
	args := &redis.XAddArgs{
		Stream: key,
		Values: values,
	}
	if p.options.MaxLen > 0 {
		args.MaxLen = p.options.MaxLen
		args.Approx = true
	}

	id, err := p.redis.XAdd(ctx, args).Result()
	if err != nil {
		return "", err
	}
	p.ensureTTL(ctx, key)
	return id, nil
}

// ensureTTL sets the expiry on first write.
func (p *Publisher) ensureTTL(ctx context.Context, key string) {
	if p.options.TTL <= 0 {
		return
	}

	ttl, err := p.redis.TTL(ctx, key).Result()
	if err != nil {
		return
	}
	if ttl < 0 {
		p.redis.Expire(ctx, key, p.options.TTL)
	}
}

func (p *Publisher) Delete(ctx context.Context, jobID string) error {
	return p.redis.Del(ctx, StreamKey(jobID)).Err()
}
