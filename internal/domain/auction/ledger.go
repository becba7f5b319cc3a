package auction

import (
	"context"

	"github.com/wicketbid/cricket-auction/internal/domain/player"
)

// TeamSummary is the per-team auction scoreboard row.
type TeamSummary struct {
	TeamID         string
	Name           string
	TotalPlayers   int
	RemainingPurse int64
}

// Ledger is the authoritative record of player-to-team assignment and purse
// accounting. Implementations must make Sell atomic across the player and
// team rows: concurrent sells of the same player serialize and at most one
// succeeds, and no failure path leaves partial state behind.
type Ledger interface {
	// Sell assigns an unresolved player to a team at soldPrice and debits
	// the team purse in the same atomic unit. Failures are reported through
	// the sentinel errors in this package.
	Sell(ctx context.Context, playerID, teamID string, soldPrice int64) (player.Player, error)

	// MarkUnsold moves an unresolved player to the terminal unsold state.
	// No team or purse effect.
	MarkUnsold(ctx context.Context, playerID string) (player.Player, error)

	// NextUnresolved returns the next player awaiting an outcome, in
	// creation order with ties broken by ascending id. ok is false once
	// every player is resolved.
	NextUnresolved(ctx context.Context) (p player.Player, ok bool, err error)

	// Summary projects the committed ledger state per team. It must never
	// serve stale data.
	Summary(ctx context.Context) ([]TeamSummary, error)
}
