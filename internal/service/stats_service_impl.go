package service

import (
	"context"

	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/repository"
)

type statsService struct {
	stats repository.StatsRepo
}

func NewStatsService(stats repository.StatsRepo) StatsService {
	return &statsService{stats: stats}
}

func (s *statsService) Compute(ctx context.Context) (*domain.Stats, error) {
	return s.stats.Compute(ctx)
}
