package dto

import "github.com/Aixtrade/Tally/pkg/jsonvalue"

type AggregateRequest struct {
	Data []jsonvalue.Value `json:"data" binding:"required"`
}

type AggregateResponse struct {
	StringLen int   `json:"string_len"`
	IntSum    int64 `json:"int_sum"`
}

type CreateJobRequest struct {
	Data  []jsonvalue.Value `json:"data" binding:"required"`
	Queue string            `json:"queue,omitempty"`
}

type CreateJobResponse struct {
	JobID  string `json:"job_id"`
	Queue  string `json:"queue"`
	Status string `json:"status"`
}

type JobResponse struct {
	ID          string             `json:"id"`
	Queue       string             `json:"queue"`
	Type        string             `json:"type"`
	State       string             `json:"state"`
	MaxRetry    int                `json:"max_retry"`
	Retried     int                `json:"retried"`
	LastErr     string             `json:"last_err,omitempty"`
	CompletedAt string             `json:"completed_at,omitempty"`
	Result      *AggregateResponse `json:"result,omitempty"`
}

type QueueStatsResponse struct {
	Queue     string `json:"queue"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
	Completed int    `json:"completed"`
}

type ElementDetails struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

type FieldDetails struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
