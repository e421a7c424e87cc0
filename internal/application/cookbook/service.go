package cookbook

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aixtrade/Tally/internal/domain/cookbook"
	"github.com/Aixtrade/Tally/internal/infrastructure/observability/metrics"
)

type Service struct {
	repo   cookbook.Repository
	logger *zap.Logger
}

func NewService(repo cookbook.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ParseName(ctx context.Context, input string) (string, error) {
	return cookbook.ParseHandwriting(input)
}

func (s *Service) CreateEntry(ctx context.Context, entry *cookbook.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Info("cookbook entry rejected",
			zap.String("name", entry.Name),
			zap.Error(err),
		)
		return err
	}

	metrics.RecordCookbookEntry(entry.Type.String())
	s.logger.Info("cookbook entry created",
		zap.String("name", entry.Name),
		zap.String("type", entry.Type.String()),
	)
	return nil
}

func (s *Service) Summary(ctx context.Context, name string) (*cookbook.Summary, error) {
	return cookbook.Summarize(ctx, s.repo, name)
}
