package auction

import (
	"errors"
	"fmt"

	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/domain/team"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrAlreadyResolved   = errors.New("player is already sold or unsold")
	ErrBidBelowFloor     = errors.New("sold price is below the player base price")
	ErrInsufficientPurse = errors.New("team does not have enough purse remaining")
)

// Rules stores auction validation parameters: the purse every new team
// starts with and the closed set of permitted base-price tiers.
type Rules struct {
	InitialPurse   int64
	BasePriceTiers []int64
}

func DefaultRules() Rules {
	return Rules{
		InitialPurse:   100000,
		BasePriceTiers: []int64{2000, 3000, 5000},
	}
}

func (r Rules) Validate() error {
	if r.InitialPurse <= 0 {
		return fmt.Errorf("initial purse must be greater than zero")
	}
	if len(r.BasePriceTiers) == 0 {
		return fmt.Errorf("at least one base price tier is required")
	}
	for _, tier := range r.BasePriceTiers {
		if tier <= 0 {
			return fmt.Errorf("base price tier must be greater than zero, got %d", tier)
		}
		if tier > r.InitialPurse {
			return fmt.Errorf("base price tier %d exceeds the initial purse %d", tier, r.InitialPurse)
		}
	}

	return nil
}

// AllowedBasePrice reports whether price is one of the configured tiers.
func (r Rules) AllowedBasePrice(price int64) bool {
	for _, tier := range r.BasePriceTiers {
		if tier == price {
			return true
		}
	}
	return false
}

// ValidateSale checks the sale preconditions without mutating anything.
// Ledger implementations call it inside their critical section so the check
// and the paired player/team mutation form one atomic unit.
func ValidateSale(p player.Player, t team.Team, soldPrice int64) error {
	if p.Resolved() {
		return fmt.Errorf("%w: player=%s", ErrAlreadyResolved, p.ID)
	}
	if soldPrice < p.BasePrice {
		return fmt.Errorf("%w: bid=%d floor=%d", ErrBidBelowFloor, soldPrice, p.BasePrice)
	}
	if t.RemainingPurse < soldPrice {
		return fmt.Errorf("%w: team=%s purse=%d bid=%d", ErrInsufficientPurse, t.ID, t.RemainingPurse, soldPrice)
	}

	return nil
}
