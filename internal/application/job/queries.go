package job

import apperrors "github.com/Aixtrade/Tally/pkg/errors"

type GetJobQuery struct {
	JobID string `json:"job_id"`
	Queue string `json:"queue"`
}

func (q *GetJobQuery) Validate() error {
	if q.JobID == "" {
		return apperrors.ErrInvalidJobID
	}
	if q.Queue == "" {
		return apperrors.ErrInvalidQueue
	}
	return nil
}

type GetQueueStatsQuery struct {
	Queue string `json:"queue,omitempty"`
}
