package data

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Aixtrade/Tally/internal/domain/data"
	"github.com/Aixtrade/Tally/internal/infrastructure/observability/metrics"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

func (s *Service) Aggregate(ctx context.Context, cmd *AggregateCommand) (*data.Result, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	acc := data.NewAccumulator()
	err := acc.AddAll(cmd.Data)

	var result data.Result
	if err == nil {
		result, err = acc.Result()
	}

	outcome := Outcome(err)
	metrics.RecordAggregation(cmd.Transport, outcome, time.Since(start).Seconds())

	if err != nil {
		s.logger.Info("aggregation rejected",
			zap.String("transport", cmd.Transport),
			zap.Int("elements", len(cmd.Data)),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil, err
	}

	for kind, n := range acc.KindCounts() {
		metrics.RecordElements(kind.String(), n)
	}

	s.logger.Debug("aggregation completed",
		zap.String("transport", cmd.Transport),
		zap.Int("elements", len(cmd.Data)),
		zap.Int("string_len", result.StringCount),
		zap.Int64("int_sum", result.IntegerSum),
	)

	return &result, nil
}

// Outcome labels an aggregation error for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrInvalidNumericElement):
		return "invalid_numeric_element"
	case errors.Is(err, apperrors.ErrIntegerOverflow):
		return "integer_overflow"
	default:
		return "error"
	}
}
