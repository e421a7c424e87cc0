package progress

import "time"

// Progress is a snapshot of a batch aggregation job.
type Progress struct {
	JobID       string `json:"job_id"`
	Processed   int    `json:"processed"`
	Total       int    `json:"total"`
	Percentage  int32  `json:"percentage"`
	Stage       string `json:"stage"`
	Message     string `json:"message,omitempty"`
	TimestampMs int64  `json:"timestamp_ms"`
}

// NewProgress reports 100% when total is 0.
func NewProgress(jobID string, processed, total int, stage string) *Progress {
	pct := int32(100)
	if total > 0 {
		pct = int32(processed * 100 / total)
	}
	return &Progress{
		JobID:       jobID,
		Processed:   processed,
		Total:       total,
		Percentage:  pct,
		Stage:       stage,
		TimestampMs: time.Now().UnixMilli(),
	}
}

func StreamKey(jobID string) string {
	return "progress:" + jobID
}

type StreamOptions struct {
	MaxLen      int64         // approximate stream cap
	TTL         time.Duration
	ReadTimeout time.Duration // XREAD block
}

func DefaultOptions() StreamOptions {
	return StreamOptions{
		MaxLen:      1000,
		TTL:         time.Hour,
		ReadTimeout: 30 * time.Second,
	}
}
