package memory

import (
	"context"
	"fmt"

	"github.com/wicketbid/cricket-auction/internal/domain/auction"
	"github.com/wicketbid/cricket-auction/internal/domain/player"
)

func (s *Store) Sell(_ context.Context, playerID, teamID string, soldPrice int64) (player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[playerID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrPlayerNotFound, playerID)
	}
	t, ok := s.teams[teamID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: team=%s", auction.ErrTeamNotFound, teamID)
	}

	if err := auction.ValidateSale(p, t, soldPrice); err != nil {
		return player.Player{}, err
	}

	now := s.now().UTC()
	p.TeamID = teamID
	p.SoldPrice = soldPrice
	p.IsSold = true
	p.UpdatedAt = now
	t.RemainingPurse -= soldPrice
	t.UpdatedAt = now

	s.players[playerID] = p
	s.teams[teamID] = t

	return p, nil
}

func (s *Store) MarkUnsold(_ context.Context, playerID string) (player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[playerID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrPlayerNotFound, playerID)
	}
	if p.Resolved() {
		return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrAlreadyResolved, playerID)
	}

	p.IsUnsold = true
	p.UpdatedAt = s.now().UTC()
	s.players[playerID] = p

	return p, nil
}

func (s *Store) NextUnresolved(_ context.Context) (player.Player, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.playersInCreationOrder() {
		if !p.Resolved() {
			return p, true, nil
		}
	}

	return player.Player{}, false, nil
}

func (s *Store) Summary(_ context.Context) ([]auction.TeamSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	soldCount := make(map[string]int, len(s.teams))
	for _, p := range s.players {
		if p.IsSold {
			soldCount[p.TeamID]++
		}
	}

	teams := s.teamsInCreationOrder()
	out := make([]auction.TeamSummary, 0, len(teams))
	for _, t := range teams {
		out = append(out, auction.TeamSummary{
			TeamID:         t.ID,
			Name:           t.Name,
			TotalPlayers:   soldCount[t.ID],
			RemainingPurse: t.RemainingPurse,
		})
	}

	return out, nil
}
