package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
)

// MaxSeriesDays is the longest allowed distance between start and end date.
const MaxSeriesDays = 92

type SeriesService interface {
	CreateSeries(ctx context.Context, callerID int, input CreateSeriesInput) (*models.Series, error)
	GetSeries(ctx context.Context, callerID, seriesID int) (*models.Series, error)
	ListSeries(ctx context.Context, callerID int) ([]models.Series, error)
}

type CreateSeriesInput struct {
	Name      string      `json:"name"`
	StartDate models.Date `json:"start_date"`
	EndDate   models.Date `json:"end_date"`
}

type seriesService struct {
	seriesRepo repositories.SeriesRepository
	gate       AccessGate
}

func NewSeriesService(seriesRepo repositories.SeriesRepository, gate AccessGate) SeriesService {
	return &seriesService{seriesRepo: seriesRepo, gate: gate}
}

func (s *seriesService) CreateSeries(ctx context.Context, callerID int, input CreateSeriesInput) (*models.Series, error) {
	if _, err := s.gate.RequireScorer(ctx, callerID); err != nil {
		return nil, err
	}

	name, err := requireName("name", input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateSeriesDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	series := &models.Series{
		Name:      name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.seriesRepo.Create(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *seriesService) GetSeries(ctx context.Context, callerID, seriesID int) (*models.Series, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	series, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return series, nil
}

func (s *seriesService) ListSeries(ctx context.Context, callerID int) ([]models.Series, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	return s.seriesRepo.List(ctx)
}

// validateSeriesDates requires 0 < end - start <= MaxSeriesDays.
func validateSeriesDates(start, end models.Date) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidationFailed)
	}
	days := start.DaysUntil(end)
	if days <= 0 {
		return fmt.Errorf("%w: end date %s must be after start date %s", ErrInvalidDuration, end, start)
	}
	if days > MaxSeriesDays {
		return fmt.Errorf("%w: %d days exceeds the %d day limit", ErrInvalidDuration, days, MaxSeriesDays)
	}
	return nil
}
