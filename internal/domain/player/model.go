package player

import (
	"fmt"
	"time"
)

// Role is the closed set of cricket player categories used at auction.
type Role string

const (
	RoleBatsman    Role = "BATSMAN"
	RoleBowler     Role = "BOWLER"
	RoleAllRounder Role = "ALLROUNDER"
)

var AllRoles = map[Role]struct{}{
	RoleBatsman:    {},
	RoleBowler:     {},
	RoleAllRounder: {},
}

// Player is an athlete registered in the auction pool. A player starts
// unresolved and ends either sold to a team or marked unsold; both outcomes
// are terminal.
type Player struct {
	ID          string
	Name        string
	Role        Role
	BasePrice   int64
	Mobile      string
	Description string
	Stats       string
	ImageURL    string
	TeamID      string
	SoldPrice   int64
	IsSold      bool
	IsUnsold    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Resolved reports whether the player already has a terminal auction outcome.
func (p Player) Resolved() bool {
	return p.IsSold || p.IsUnsold
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if p.BasePrice <= 0 {
		return fmt.Errorf("player base price must be greater than zero")
	}
	if p.IsSold && p.IsUnsold {
		return fmt.Errorf("player cannot be both sold and unsold")
	}
	if p.IsSold && (p.TeamID == "" || p.SoldPrice <= 0) {
		return fmt.Errorf("sold player must carry a team id and a sold price")
	}

	return nil
}
