package services

import (
	"context"

	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
)

type RoundService interface {
	CreateRound(ctx context.Context, callerID int, input CreateRoundInput) (*models.Round, error)
	GetRound(ctx context.Context, callerID, roundID int) (*models.Round, error)
	ListRoundsBySeries(ctx context.Context, callerID, seriesID int) ([]models.Round, error)
}

type CreateRoundInput struct {
	SeriesID int    `json:"series_id"`
	Name     string `json:"name"`
}

type roundService struct {
	roundRepo  repositories.RoundRepository
	seriesRepo repositories.SeriesRepository
	gate       AccessGate
}

func NewRoundService(roundRepo repositories.RoundRepository, seriesRepo repositories.SeriesRepository, gate AccessGate) RoundService {
	return &roundService{roundRepo: roundRepo, seriesRepo: seriesRepo, gate: gate}
}

func (s *roundService) CreateRound(ctx context.Context, callerID int, input CreateRoundInput) (*models.Round, error) {
	if _, err := s.gate.RequireScorer(ctx, callerID); err != nil {
		return nil, err
	}

	name, err := requireName("name", input.Name)
	if err != nil {
		return nil, err
	}
	if err := requireID("series_id", input.SeriesID); err != nil {
		return nil, err
	}
	if _, err := s.seriesRepo.GetByID(ctx, input.SeriesID); err != nil {
		return nil, translateRepoError(err)
	}

	round := &models.Round{SeriesID: input.SeriesID, Name: name}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, translateRepoError(err)
	}
	return round, nil
}

func (s *roundService) GetRound(ctx context.Context, callerID, roundID int) (*models.Round, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	round, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return round, nil
}

func (s *roundService) ListRoundsBySeries(ctx context.Context, callerID, seriesID int) ([]models.Round, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	if _, err := s.seriesRepo.GetByID(ctx, seriesID); err != nil {
		return nil, translateRepoError(err)
	}
	return s.roundRepo.ListBySeries(ctx, seriesID)
}
