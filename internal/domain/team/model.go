package team

import (
	"fmt"
	"time"
)

// Team is a franchise bidding at the auction. RemainingPurse only ever
// decreases, and never below zero.
type Team struct {
	ID              string
	Name            string
	CaptainName     string
	CaptainImageURL string
	InitialPurse    int64
	RemainingPurse  int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.CaptainName == "" {
		return fmt.Errorf("team captain name is required")
	}
	if t.InitialPurse <= 0 {
		return fmt.Errorf("team initial purse must be greater than zero")
	}
	if t.RemainingPurse < 0 || t.RemainingPurse > t.InitialPurse {
		return fmt.Errorf("team remaining purse must stay within [0, initial purse]")
	}

	return nil
}
