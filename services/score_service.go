package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/series-points/live"
	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
)

// Notifier receives a message after every ledger write. *live.Hub satisfies it.
type Notifier interface {
	BroadcastToRoom(room string, message interface{})
}

type ScoreService interface {
	RecordTeamPoints(ctx context.Context, callerID int, input RecordTeamPointsInput) (*models.TeamPointEntry, error)
	RecordPlayerPerformance(ctx context.Context, callerID int, input RecordPlayerPerformanceInput) (*models.PlayerPerformanceEntry, error)
	ListRoundScores(ctx context.Context, callerID, roundID int) (*models.RoundScores, error)
}

type RecordTeamPointsInput struct {
	RoundID int `json:"round_id"`
	TeamID  int `json:"team_id"`
	Points  int `json:"points"`
}

type RecordPlayerPerformanceInput struct {
	RoundID    int  `json:"round_id"`
	PlayerID   int  `json:"player_id"`
	Score      int  `json:"score"`
	ManOfMatch bool `json:"man_of_match"`
}

type scoreService struct {
	scoreRepo repositories.ScoreRepository
	roundRepo repositories.RoundRepository
	teamRepo  repositories.TeamRepository
	userRepo  repositories.UserRepository
	gate      AccessGate
	notifier  Notifier
	logger    *slog.Logger
}

// NewScoreService builds the ledger service. notifier may be nil.
func NewScoreService(
	scoreRepo repositories.ScoreRepository,
	roundRepo repositories.RoundRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	gate AccessGate,
	notifier Notifier,
	logger *slog.Logger,
) ScoreService {
	return &scoreService{
		scoreRepo: scoreRepo,
		roundRepo: roundRepo,
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		gate:      gate,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *scoreService) RecordTeamPoints(ctx context.Context, callerID int, input RecordTeamPointsInput) (*models.TeamPointEntry, error) {
	scorer, err := s.gate.RequireScorer(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireID("round_id", input.RoundID); err != nil {
		return nil, err
	}
	if err := requireID("team_id", input.TeamID); err != nil {
		return nil, err
	}

	round, err := s.roundRepo.GetByID(ctx, input.RoundID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if team.SeriesID != round.SeriesID {
		return nil, fmt.Errorf("%w: team %d is in series %d, round %d is in series %d",
			ErrTeamNotInSeries, team.ID, team.SeriesID, round.ID, round.SeriesID)
	}

	entry := &models.TeamPointEntry{
		RoundID: round.ID,
		TeamID:  team.ID,
		Points:  input.Points,
	}
	if err := s.scoreRepo.CreateTeamPoints(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "team points recorded",
		slog.Int("entry_id", entry.ID),
		slog.Int("round_id", entry.RoundID),
		slog.Int("team_id", entry.TeamID),
		slog.Int("points", entry.Points),
		slog.Int("scorer_id", scorer.ID),
	)
	s.notify(round.SeriesID, live.EventTeamPointsRecorded, entry)
	return entry, nil
}

func (s *scoreService) RecordPlayerPerformance(ctx context.Context, callerID int, input RecordPlayerPerformanceInput) (*models.PlayerPerformanceEntry, error) {
	scorer, err := s.gate.RequireScorer(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireID("round_id", input.RoundID); err != nil {
		return nil, err
	}
	if err := requireID("player_id", input.PlayerID); err != nil {
		return nil, err
	}

	round, err := s.roundRepo.GetByID(ctx, input.RoundID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	player, err := s.userRepo.GetByID(ctx, nil, input.PlayerID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if !player.Role.CanPlay() {
		return nil, ErrInvalidMemberRole
	}

	entry := &models.PlayerPerformanceEntry{
		RoundID:    round.ID,
		PlayerID:   player.ID,
		Score:      input.Score,
		ManOfMatch: input.ManOfMatch,
	}
	if err := s.scoreRepo.CreatePlayerPerformance(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player performance recorded",
		slog.Int("entry_id", entry.ID),
		slog.Int("round_id", entry.RoundID),
		slog.Int("player_id", entry.PlayerID),
		slog.Int("score", entry.Score),
		slog.Bool("man_of_match", entry.ManOfMatch),
		slog.Int("scorer_id", scorer.ID),
	)
	s.notify(round.SeriesID, live.EventPlayerPerformanceRecorded, entry)
	return entry, nil
}

func (s *scoreService) ListRoundScores(ctx context.Context, callerID, roundID int) (*models.RoundScores, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	if _, err := s.roundRepo.GetByID(ctx, roundID); err != nil {
		return nil, translateRepoError(err)
	}

	teamPoints, err := s.scoreRepo.ListTeamPointsByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	performances, err := s.scoreRepo.ListPerformancesByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	return &models.RoundScores{
		RoundID:      roundID,
		TeamPoints:   teamPoints,
		Performances: performances,
	}, nil
}

func (s *scoreService) notify(seriesID int, event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	room := live.SeriesRoom(seriesID)
	s.notifier.BroadcastToRoom(room, live.Message{Type: event, Payload: payload, RoomID: room})
}
