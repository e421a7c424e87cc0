package data

import (
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
	"github.com/Aixtrade/Tally/pkg/jsonvalue"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
	TransportJob  = "job"
)

type AggregateCommand struct {
	Transport string
	Data      []jsonvalue.Value
}

func (c *AggregateCommand) Validate() error {
	if c.Data == nil {
		return apperrors.ErrInvalidRequest
	}
	if c.Transport == "" {
		c.Transport = TransportHTTP
	}
	return nil
}
