package memory

import (
	"time"

	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/domain/team"
)

const seedInitialPurse = 100000

var seedBase = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func SeedTeams() []team.Team {
	teams := []team.Team{
		{ID: "team-royals", Name: "Riverside Royals", CaptainName: "Arjun Mehta"},
		{ID: "team-titans", Name: "Harbour Titans", CaptainName: "Dev Sharma"},
		{ID: "team-blasters", Name: "Valley Blasters", CaptainName: "Kiran Rao"},
		{ID: "team-strikers", Name: "Summit Strikers", CaptainName: "Rohit Nair"},
	}

	for i := range teams {
		teams[i].InitialPurse = seedInitialPurse
		teams[i].RemainingPurse = seedInitialPurse
		teams[i].CreatedAt = seedBase.Add(time.Duration(i) * time.Minute)
		teams[i].UpdatedAt = teams[i].CreatedAt
	}

	return teams
}

func SeedPlayers() []player.Player {
	players := []player.Player{
		{ID: "plr-001", Name: "Sandeep Kulkarni", Role: player.RoleBatsman, BasePrice: 5000, Stats: "3420 runs, avg 41.2"},
		{ID: "plr-002", Name: "Imran Shaikh", Role: player.RoleBowler, BasePrice: 5000, Stats: "142 wickets, econ 6.8"},
		{ID: "plr-003", Name: "Vikram Joshi", Role: player.RoleAllRounder, BasePrice: 5000, Stats: "1810 runs, 88 wickets"},
		{ID: "plr-004", Name: "Tushar Patil", Role: player.RoleBatsman, BasePrice: 3000, Stats: "1290 runs, avg 33.5"},
		{ID: "plr-005", Name: "Nikhil Menon", Role: player.RoleBowler, BasePrice: 3000, Stats: "76 wickets, econ 7.4"},
		{ID: "plr-006", Name: "Farhan Qureshi", Role: player.RoleAllRounder, BasePrice: 3000, Stats: "840 runs, 51 wickets"},
		{ID: "plr-007", Name: "Ajay Verma", Role: player.RoleBatsman, BasePrice: 2000, Stats: "610 runs, avg 27.1"},
		{ID: "plr-008", Name: "Harpreet Gill", Role: player.RoleBowler, BasePrice: 2000, Stats: "38 wickets, econ 7.9"},
		{ID: "plr-009", Name: "Manoj Pillai", Role: player.RoleAllRounder, BasePrice: 2000, Stats: "420 runs, 24 wickets"},
		{ID: "plr-010", Name: "Ritesh Yadav", Role: player.RoleBatsman, BasePrice: 2000, Stats: "530 runs, avg 25.8"},
	}

	for i := range players {
		players[i].CreatedAt = seedBase.Add(time.Duration(i) * time.Second)
		players[i].UpdatedAt = players[i].CreatedAt
	}

	return players
}
