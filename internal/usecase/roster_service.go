package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wicketbid/cricket-auction/internal/domain/auction"
	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/domain/team"
	idgen "github.com/wicketbid/cricket-auction/internal/platform/id"
	"github.com/wicketbid/cricket-auction/internal/platform/logging"
)

// CreatePlayerInput is the incoming payload for registering an auction player.
type CreatePlayerInput struct {
	Name        string
	Role        string
	BasePrice   int64
	Mobile      string
	Description string
	Stats       string
	ImageURL    string
}

// CreateTeamInput is the incoming payload for registering a franchise.
type CreateTeamInput struct {
	Name            string
	CaptainName     string
	CaptainImageURL string
}

// TeamDetail is a team joined with the players sold to it.
type TeamDetail struct {
	Team    team.Team
	Players []player.Player
}

// RosterService owns the administrative surface that feeds the auction:
// player and team registration plus the listing projections.
type RosterService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	rules      auction.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	rules auction.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RosterService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreatePlayer")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	role := player.Role(strings.ToUpper(strings.TrimSpace(input.Role)))

	if input.Name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if _, ok := player.AllRoles[role]; !ok {
		return player.Player{}, fmt.Errorf("%w: unknown role %q, expected one of BATSMAN, BOWLER, ALLROUNDER", ErrInvalidInput, input.Role)
	}
	if !s.rules.AllowedBasePrice(input.BasePrice) {
		return player.Player{}, fmt.Errorf("%w: base price %d is not an allowed tier %v", ErrInvalidInput, input.BasePrice, s.rules.BasePriceTiers)
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now().UTC()
	item := player.Player{
		ID:          playerID,
		Name:        input.Name,
		Role:        role,
		BasePrice:   input.BasePrice,
		Mobile:      strings.TrimSpace(input.Mobile),
		Description: strings.TrimSpace(input.Description),
		Stats:       strings.TrimSpace(input.Stats),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player registered",
		"player_id", item.ID,
		"role", item.Role,
		"base_price", item.BasePrice,
	)

	return item, nil
}

func (s *RosterService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreateTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CaptainName = strings.TrimSpace(input.CaptainName)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if input.CaptainName == "" {
		return team.Team{}, fmt.Errorf("%w: captain name is required", ErrInvalidInput)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	item := team.Team{
		ID:              teamID,
		Name:            input.Name,
		CaptainName:     input.CaptainName,
		CaptainImageURL: strings.TrimSpace(input.CaptainImageURL),
		InitialPurse:    s.rules.InitialPurse,
		RemainingPurse:  s.rules.InitialPurse,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team registered",
		"team_id", item.ID,
		"initial_purse", item.InitialPurse,
	)

	return item, nil
}

func (s *RosterService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

// ListTeamDetails returns every franchise together with its current squad,
// so the team list can render purses and rosters without a request per team.
func (s *RosterService) ListTeamDetails(ctx context.Context) ([]TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTeamDetails")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	squads := make(map[string][]player.Player, len(teams))
	for _, p := range players {
		if p.IsSold {
			squads[p.TeamID] = append(squads[p.TeamID], p)
		}
	}

	out := make([]TeamDetail, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamDetail{Team: t, Players: squads[t.ID]})
	}

	return out, nil
}

// GetTeamDetail returns a team plus the players hammered to it. The squad is
// a projection over the player pool, not a collection owned by the team row.
func (s *RosterService) GetTeamDetail(ctx context.Context, teamID string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetTeamDetail")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamDetail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamDetail{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("list players: %w", err)
	}

	squad := make([]player.Player, 0, len(players))
	for _, p := range players {
		if p.IsSold && p.TeamID == teamID {
			squad = append(squad, p)
		}
	}

	return TeamDetail{Team: item, Players: squad}, nil
}
