package job

import (
	"encoding/json"
	"time"

	"github.com/Aixtrade/Tally/pkg/tasktype"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusRetry     Status = "retry"
	StatusArchived  Status = "archived"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

// Job is an aggregation request handed to the worker through the queue.
type Job struct {
	ID         string          `json:"id"`
	Type       tasktype.Type   `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Queue      string          `json:"queue"`
	MaxRetries int             `json:"max_retries"`
	Timeout    time.Duration   `json:"timeout"`
	Retention  time.Duration   `json:"retention"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewJob(jobType tasktype.Type, payload any) (*Job, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Job{
		Type:       jobType,
		Payload:    payloadBytes,
		Queue:      jobType.Queue(),
		MaxRetries: 3,
		Timeout:    10 * time.Minute,
		CreatedAt:  time.Now(),
	}, nil
}

func (j *Job) UnmarshalPayload(v any) error {
	return json.Unmarshal(j.Payload, v)
}
