package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
	"github.com/Dosada05/series-points/standings"
	"github.com/Dosada05/series-points/storage"
)

type StandingsService interface {
	ManOfMatch(ctx context.Context, callerID, roundID int) (*models.ManOfMatch, error)
	WinnerTeam(ctx context.Context, callerID, seriesID int) (*models.TeamTotal, error)
	ManOfSeries(ctx context.Context, callerID, seriesID int) (*models.PlayerTotal, error)
	SeriesStandings(ctx context.Context, callerID, seriesID int) (*models.SeriesStandings, error)
	ExportStandings(ctx context.Context, callerID, seriesID int) (*ExportResult, error)
}

type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type standingsService struct {
	scoreRepo  repositories.ScoreRepository
	roundRepo  repositories.RoundRepository
	seriesRepo repositories.SeriesRepository
	gate       AccessGate
	uploader   storage.FileUploader
	logger     *slog.Logger
}

// NewStandingsService builds the aggregation service. uploader may be nil, in
// which case exports fail with ErrExportUnavailable.
func NewStandingsService(
	scoreRepo repositories.ScoreRepository,
	roundRepo repositories.RoundRepository,
	seriesRepo repositories.SeriesRepository,
	gate AccessGate,
	uploader storage.FileUploader,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		scoreRepo:  scoreRepo,
		roundRepo:  roundRepo,
		seriesRepo: seriesRepo,
		gate:       gate,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *standingsService) ManOfMatch(ctx context.Context, callerID, roundID int) (*models.ManOfMatch, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	if _, err := s.roundRepo.GetByID(ctx, roundID); err != nil {
		return nil, translateRepoError(err)
	}

	totals, err := s.scoreRepo.RoundPlayerTotals(ctx, roundID)
	if err != nil {
		return nil, err
	}
	best, ok := standings.ManOfMatch(totals)
	if !ok {
		return nil, fmt.Errorf("%w: round %d has no performances", ErrNoData, roundID)
	}
	return &models.ManOfMatch{RoundID: roundID, Player: best}, nil
}

func (s *standingsService) WinnerTeam(ctx context.Context, callerID, seriesID int) (*models.TeamTotal, error) {
	if err := s.resolveSeries(ctx, callerID, seriesID); err != nil {
		return nil, err
	}

	totals, err := s.scoreRepo.SeriesTeamTotals(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	winner, ok := standings.WinnerTeam(totals)
	if !ok {
		return nil, fmt.Errorf("%w: series %d has no team points", ErrNoData, seriesID)
	}
	return &winner, nil
}

func (s *standingsService) ManOfSeries(ctx context.Context, callerID, seriesID int) (*models.PlayerTotal, error) {
	if err := s.resolveSeries(ctx, callerID, seriesID); err != nil {
		return nil, err
	}

	totals, err := s.scoreRepo.SeriesPlayerTotals(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	top, ok := standings.TopPlayer(totals)
	if !ok {
		return nil, fmt.Errorf("%w: series %d has no performances", ErrNoData, seriesID)
	}
	return &top, nil
}

func (s *standingsService) SeriesStandings(ctx context.Context, callerID, seriesID int) (*models.SeriesStandings, error) {
	if err := s.resolveSeries(ctx, callerID, seriesID); err != nil {
		return nil, err
	}
	return s.buildStandings(ctx, seriesID)
}

func (s *standingsService) buildStandings(ctx context.Context, seriesID int) (*models.SeriesStandings, error) {
	var (
		teamTotals   []models.TeamTotal
		playerTotals []models.PlayerTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teamTotals, err = s.scoreRepo.SeriesTeamTotals(gctx, seriesID)
		return err
	})
	g.Go(func() error {
		var err error
		playerTotals, err = s.scoreRepo.SeriesPlayerTotals(gctx, seriesID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	winner, ok := standings.WinnerTeam(teamTotals)
	if !ok {
		return nil, fmt.Errorf("%w: series %d has no team points", ErrNoData, seriesID)
	}

	result := &models.SeriesStandings{
		SeriesID:    seriesID,
		WinnerTeam:  winner,
		TeamTable:   standings.RankTeams(teamTotals),
		PlayerTable: standings.RankPlayers(playerTotals),
	}
	if top, ok := standings.TopPlayer(playerTotals); ok {
		result.ManOfSeries = &top
	}
	return result, nil
}

func (s *standingsService) ExportStandings(ctx context.Context, callerID, seriesID int) (*ExportResult, error) {
	if _, err := s.gate.RequireScorer(ctx, callerID); err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}
	if _, err := s.seriesRepo.GetByID(ctx, seriesID); err != nil {
		return nil, translateRepoError(err)
	}

	table, err := s.buildStandings(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings of series %d: %w", seriesID, err)
	}

	key := fmt.Sprintf("standings/series-%d/%s.json", seriesID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to export standings of series %d: %w", seriesID, err)
	}

	s.logger.InfoContext(ctx, "standings exported",
		slog.Int("series_id", seriesID),
		slog.String("key", result.Key),
		slog.Int("caller_id", callerID),
	)
	return &ExportResult{Key: result.Key, URL: result.Location}, nil
}

func (s *standingsService) resolveSeries(ctx context.Context, callerID, seriesID int) error {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return err
	}
	if _, err := s.seriesRepo.GetByID(ctx, seriesID); err != nil {
		return translateRepoError(err)
	}
	return nil
}
