package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/wicketbid/cricket-auction/internal/domain/auction"
	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/platform/logging"
)

// SellInput is the incoming payload for hammering a player to a team.
type SellInput struct {
	PlayerID  string
	TeamID    string
	SoldPrice int64
}

// AuctionService mediates the live auction flow on top of the ledger.
type AuctionService struct {
	ledger     auction.Ledger
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewAuctionService(ledger auction.Ledger, playerRepo player.Repository, logger *logging.Logger) *AuctionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuctionService{
		ledger:     ledger,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *AuctionService) Sell(ctx context.Context, input SellInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.Sell")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.PlayerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return player.Player{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.SoldPrice <= 0 {
		return player.Player{}, fmt.Errorf("%w: sold price must be greater than zero", ErrInvalidInput)
	}

	sold, err := s.ledger.Sell(ctx, input.PlayerID, input.TeamID, input.SoldPrice)
	if err != nil {
		return player.Player{}, fmt.Errorf("sell player: %w", err)
	}

	s.logger.InfoContext(ctx, "player sold",
		"player_id", sold.ID,
		"team_id", sold.TeamID,
		"sold_price", sold.SoldPrice,
	)

	return sold, nil
}

func (s *AuctionService) MarkUnsold(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.MarkUnsold")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	unsold, err := s.ledger.MarkUnsold(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("mark player unsold: %w", err)
	}

	s.logger.InfoContext(ctx, "player marked unsold", "player_id", unsold.ID)

	return unsold, nil
}

// NextPlayer returns the next player awaiting an outcome, or
// ErrAuctionComplete once the whole pool is resolved.
func (s *AuctionService) NextPlayer(ctx context.Context) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.NextPlayer")
	defer span.End()

	next, ok, err := s.ledger.NextUnresolved(ctx)
	if err != nil {
		return player.Player{}, fmt.Errorf("next unresolved player: %w", err)
	}
	if !ok {
		return player.Player{}, ErrAuctionComplete
	}

	return next, nil
}

func (s *AuctionService) Summary(ctx context.Context) ([]auction.TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.Summary")
	defer span.End()

	summaries, err := s.ledger.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger summary: %w", err)
	}

	return summaries, nil
}

// SearchPlayers filters the pool by a case-insensitive substring match over
// name or role. A blank query returns an empty result, matching the arena
// view which clears results on empty input.
func (s *AuctionService) SearchPlayers(ctx context.Context, query string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.SearchPlayers")
	defer span.End()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []player.Player{}, nil
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(string(p.Role)), query) {
			out = append(out, p)
		}
	}

	return out, nil
}
