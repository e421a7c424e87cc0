package payload

import "github.com/Aixtrade/Tally/pkg/jsonvalue"

type AggregatePayload struct {
	Data []jsonvalue.Value `json:"data"`
}

type AggregateResult struct {
	JobID     string `json:"job_id"`
	StringLen int    `json:"string_len"`
	IntSum    int64  `json:"int_sum"`
	Elements  int    `json:"elements"`
}
