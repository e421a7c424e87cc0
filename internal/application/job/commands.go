package job

import (
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
	"github.com/Aixtrade/Tally/pkg/jsonvalue"
)

type EnqueueJobCommand struct {
	Data  []jsonvalue.Value `json:"data"`
	Queue string            `json:"queue,omitempty"`
}

func (c *EnqueueJobCommand) Validate() error {
	if c.Data == nil {
		return apperrors.ErrInvalidPayload
	}
	return nil
}

type CancelJobCommand struct {
	JobID string `json:"job_id"`
}

func (c *CancelJobCommand) Validate() error {
	if c.JobID == "" {
		return apperrors.ErrInvalidJobID
	}
	return nil
}

type DeleteJobCommand struct {
	JobID string `json:"job_id"`
	Queue string `json:"queue"`
}

func (c *DeleteJobCommand) Validate() error {
	if c.JobID == "" {
		return apperrors.ErrInvalidJobID
	}
	if c.Queue == "" {
		return apperrors.ErrInvalidQueue
	}
	return nil
}
