package progress

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Subscriber reads progress from Redis streams.
type Subscriber struct {
	redis   *redis.Client
	logger  *zap.Logger
	options StreamOptions
}

func NewSubscriber(redisClient *redis.Client, logger *zap.Logger, opts ...StreamOptions) *Subscriber {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	return &Subscriber{
		redis:   redisClient,
		logger:  logger,
		options: opt,
	}
}

type SubscribeResult struct {
	Progress *Progress
	IsFinal  bool
	Status   string // final message only
	Result   string // final message only, result JSON
	StreamID string
	Error    error
}

// Subscribe reads until the final message or ctx is done.
// A startID of "$" reads only new messages, "0" reads from the start.
func (s *Subscriber) Subscribe(ctx context.Context, jobID string, startID string) <-chan SubscribeResult {
	ch := make(chan SubscribeResult, 10)

	lastID := startID
	if lastID == "" {
		lastID = "$"
	}

	go func() {
		defer close(ch)

		key := StreamKey(jobID)
		block := s.options.ReadTimeout
		if block == 0 {
			block = 30 * time.Second
		}

		for {
			if ctx.Err() != nil {
				return
			}

			streams, err := s.redis.XRead(ctx, &redis.XReadArgs{
				Streams: []string{key, lastID},
				Block:   block,
				Count:   10,
			}).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				s.logger.Error("failed to read stream",
					zap.String("job_id", jobID),
					zap.Error(err),
				)
				select {
				case ch <- SubscribeResult{Error: err}:
				case <-ctx.Done():
				}
				return
			}

			for _, stream := range streams {
				for _, msg := range stream.Messages {
					result := parseMessage(jobID, msg)
					lastID = msg.ID

					select {
					case ch <- result:
					case <-ctx.Done():
						return
					}

					if result.IsFinal {
						return
					}
				}
			}
		}
	}()

	return ch
}

// GetHistory reads past entries. A count of 0 reads all of them.
func (s *Subscriber) GetHistory(ctx context.Context, jobID string, startID string, count int64) ([]SubscribeResult, error) {
	key := StreamKey(jobID)
	if startID == "" {
		startID = "-"
	}

	var messages []redis.XMessage
	var err error
	if count > 0 {
		messages, err = s.redis.XRangeN(ctx, key, startID, "+", count).Result()
	} else {
		messages, err = s.redis.XRange(ctx, key, startID, "+").Result()
	}
	if err != nil {
		return nil, err
	}

	results := make([]SubscribeResult, 0, len(messages))
	for _, msg := range messages {
		results = append(results, parseMessage(jobID, msg))
	}
	return results, nil
}

// GetLatest returns the last entry, or nil when there is none.
func (s *Subscriber) GetLatest(ctx context.Context, jobID string) (*SubscribeResult, error) {
	messages, err := s.redis.XRevRangeN(ctx, StreamKey(jobID), "+", "-", 1).Result()
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}

	result := parseMessage(jobID, messages[0])
	return &result, nil
}

func parseMessage(jobID string, msg redis.XMessage) SubscribeResult {
	result := SubscribeResult{
		StreamID: msg.ID,
		Progress: &Progress{JobID: jobID},
	}

	values := msg.Values
	result.Progress.Processed = int(parseInt(values["processed"]))
	result.Progress.Total = int(parseInt(values["total"]))
	result.Progress.Percentage = int32(parseInt(values["percentage"]))
	result.Progress.TimestampMs = parseInt(values["timestamp_ms"])

	if v, ok := values["stage"].(string); ok {
		result.Progress.Stage = v
	}
	if v, ok := values["message"].(string); ok {
		result.Progress.Message = v
	}

	if v, ok := values["is_final"].(string); ok && v == "true" {
		result.IsFinal = true
		if status, ok := values["status"].(string); ok {
			result.Status = status
		}
		if res, ok := values["result"].(string); ok {
			result.Result = res
		}
	}

	return result
}

func parseInt(v interface{}) int64 {
	switch val := v.(type) {
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case int64:
		return val
	default:
		return 0
	}
}
