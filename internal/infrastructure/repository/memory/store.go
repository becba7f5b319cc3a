package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/domain/team"
)

// Store keeps the whole auction state behind one lock. It backs the dev
// profile and the test suites; the ledger operations take the write lock for
// the full validate-and-mutate section, which is what makes a sale atomic
// across the player and team records.
type Store struct {
	mu      sync.RWMutex
	players map[string]player.Player
	teams   map[string]team.Team
	now     func() time.Time
}

func NewStore(players []player.Player, teams []team.Team) *Store {
	playerIndex := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerIndex[p.ID] = p
	}
	teamIndex := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamIndex[t.ID] = t
	}

	return &Store{
		players: playerIndex,
		teams:   teamIndex,
		now:     time.Now,
	}
}

func (s *Store) List(_ context.Context) ([]player.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.playersInCreationOrder(), nil
}

func (s *Store) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	return p, ok, nil
}

func (s *Store) Create(_ context.Context, item player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.players[item.ID]; exists {
		return fmt.Errorf("player %s already exists", item.ID)
	}
	s.players[item.ID] = item

	return nil
}

func (s *Store) ListTeams(_ context.Context) ([]team.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.teamsInCreationOrder(), nil
}

func (s *Store) GetTeamByID(_ context.Context, teamID string) (team.Team, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[teamID]
	return t, ok, nil
}

func (s *Store) CreateTeam(_ context.Context, item team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.teams[item.ID]; exists {
		return fmt.Errorf("team %s already exists", item.ID)
	}
	s.teams[item.ID] = item

	return nil
}

func (s *Store) playersInCreationOrder() []player.Player {
	out := make([]player.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func (s *Store) teamsInCreationOrder() []team.Team {
	out := make([]team.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// TeamRepositoryView adapts the store to the team.Repository port, whose
// method names clash with the player side of the store.
type TeamRepositoryView struct {
	store *Store
}

func (s *Store) TeamRepository() *TeamRepositoryView {
	return &TeamRepositoryView{store: s}
}

func (v *TeamRepositoryView) List(ctx context.Context) ([]team.Team, error) {
	return v.store.ListTeams(ctx)
}

func (v *TeamRepositoryView) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return v.store.GetTeamByID(ctx, teamID)
}

func (v *TeamRepositoryView) Create(ctx context.Context, item team.Team) error {
	return v.store.CreateTeam(ctx, item)
}
