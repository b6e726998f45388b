package services

import (
	"context"

	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
)

type TeamService interface {
	CreateTeam(ctx context.Context, callerID int, input CreateTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, callerID, teamID int) (*models.Team, error)
	ListTeamsBySeries(ctx context.Context, callerID, seriesID int) ([]models.Team, error)
	AddMember(ctx context.Context, callerID, teamID, userID int) (*models.Membership, error)
}

type CreateTeamInput struct {
	Name      string `json:"name"`
	SeriesID  int    `json:"series_id"`
	CaptainID int    `json:"captain_id"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	seriesRepo repositories.SeriesRepository
	userRepo   repositories.UserRepository
	gate       AccessGate
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	seriesRepo repositories.SeriesRepository,
	userRepo repositories.UserRepository,
	gate AccessGate,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		seriesRepo: seriesRepo,
		userRepo:   userRepo,
		gate:       gate,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, callerID int, input CreateTeamInput) (*models.Team, error) {
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
	if err := requireID("captain_id", input.CaptainID); err != nil {
		return nil, err
	}

	if _, err := s.seriesRepo.GetByID(ctx, input.SeriesID); err != nil {
		return nil, translateRepoError(err)
	}
	captain, err := s.userRepo.GetByID(ctx, nil, input.CaptainID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if captain.Role != models.RoleCaptain {
		return nil, ErrInvalidCaptain
	}

	team := &models.Team{
		Name:      name,
		SeriesID:  input.SeriesID,
		CaptainID: captain.ID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	team.Captain = sanitizeUser(captain)
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, callerID, teamID int) (*models.Team, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	captain, err := s.userRepo.GetByID(ctx, nil, team.CaptainID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	members, err := s.userRepo.ListByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	team.Captain = sanitizeUser(captain)
	team.Members = sanitizeUsers(members)
	return team, nil
}

func (s *teamService) ListTeamsBySeries(ctx context.Context, callerID, seriesID int) ([]models.Team, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	if _, err := s.seriesRepo.GetByID(ctx, seriesID); err != nil {
		return nil, translateRepoError(err)
	}
	return s.teamRepo.ListBySeries(ctx, seriesID)
}

func (s *teamService) AddMember(ctx context.Context, callerID, teamID, userID int) (*models.Membership, error) {
	if _, err := s.gate.RequireScorer(ctx, callerID); err != nil {
		return nil, err
	}
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, translateRepoError(err)
	}
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if !user.Role.CanPlay() {
		return nil, ErrInvalidMemberRole
	}

	membership := &models.Membership{TeamID: teamID, UserID: userID}
	if err := s.teamRepo.AddMember(ctx, membership); err != nil {
		return nil, translateRepoError(err)
	}
	return membership, nil
}
