package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/wicketbid/cricket-auction/internal/domain/auction"
	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/domain/team"
	"github.com/wicketbid/cricket-auction/internal/infrastructure/repository/memory"
	"github.com/wicketbid/cricket-auction/internal/platform/logging"
)

func auctionFixture(t *testing.T) (*AuctionService, *memory.Store) {
	t.Helper()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	players := []player.Player{
		{ID: "p-opener", Name: "Sunil Rathore", Role: player.RoleBatsman, BasePrice: 3000, CreatedAt: base, UpdatedAt: base},
		{ID: "p-quick", Name: "Zaheer Ansari", Role: player.RoleBowler, BasePrice: 2000, CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second)},
		{ID: "p-allround", Name: "Kedar Salvi", Role: player.RoleAllRounder, BasePrice: 5000, CreatedAt: base.Add(2 * time.Second), UpdatedAt: base.Add(2 * time.Second)},
	}
	teams := []team.Team{
		{ID: "t-lions", Name: "Lions", CaptainName: "A", InitialPurse: 5000, RemainingPurse: 5000, CreatedAt: base, UpdatedAt: base},
		{ID: "t-hawks", Name: "Hawks", CaptainName: "B", InitialPurse: 100000, RemainingPurse: 100000, CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute)},
	}

	store := memory.NewStore(players, teams)
	return NewAuctionService(store, store, logging.NewNop()), store
}

func TestAuctionService_Sell_DrainsPurseToZero(t *testing.T) {
	service, _ := auctionFixture(t)

	sold, err := service.Sell(t.Context(), SellInput{PlayerID: "p-opener", TeamID: "t-lions", SoldPrice: 5000})
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if !sold.IsSold || sold.TeamID != "t-lions" || sold.SoldPrice != 5000 {
		t.Fatalf("unexpected sold player state: %+v", sold)
	}

	summaries, err := service.Summary(t.Context())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summaries[0].TeamID != "t-lions" || summaries[0].RemainingPurse != 0 {
		t.Fatalf("expected lions purse drained to 0, got %+v", summaries[0])
	}
	if summaries[0].TotalPlayers != 1 {
		t.Fatalf("expected lions to own 1 player, got %d", summaries[0].TotalPlayers)
	}

	// A second hammer on the same player must fail even for a rich team.
	_, err = service.Sell(t.Context(), SellInput{PlayerID: "p-opener", TeamID: "t-hawks", SoldPrice: 3000})
	if !errors.Is(err, auction.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestAuctionService_Sell_InsufficientPurseLeavesPlayerUnresolved(t *testing.T) {
	service, _ := auctionFixture(t)

	_, err := service.Sell(t.Context(), SellInput{PlayerID: "p-allround", TeamID: "t-lions", SoldPrice: 6000})
	if !errors.Is(err, auction.ErrInsufficientPurse) {
		t.Fatalf("expected ErrInsufficientPurse, got %v", err)
	}

	// The declined sale must leave no partial state behind.
	summaries, err := service.Summary(t.Context())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summaries[0].RemainingPurse != 5000 || summaries[0].TotalPlayers != 0 {
		t.Fatalf("expected lions untouched, got %+v", summaries[0])
	}

	next, err := service.NextPlayer(t.Context())
	if err != nil {
		t.Fatalf("next player failed: %v", err)
	}
	if next.ID != "p-opener" {
		t.Fatalf("expected p-opener still first in queue, got %s", next.ID)
	}
}

func TestAuctionService_Sell_BidBelowFloor(t *testing.T) {
	service, _ := auctionFixture(t)

	_, err := service.Sell(t.Context(), SellInput{PlayerID: "p-opener", TeamID: "t-hawks", SoldPrice: 2000})
	if !errors.Is(err, auction.ErrBidBelowFloor) {
		t.Fatalf("expected ErrBidBelowFloor, got %v", err)
	}
}

func TestAuctionService_Sell_UnknownPlayerAndTeam(t *testing.T) {
	service, _ := auctionFixture(t)

	_, err := service.Sell(t.Context(), SellInput{PlayerID: "p-ghost", TeamID: "t-lions", SoldPrice: 3000})
	if !errors.Is(err, auction.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}

	_, err = service.Sell(t.Context(), SellInput{PlayerID: "p-opener", TeamID: "t-ghost", SoldPrice: 3000})
	if !errors.Is(err, auction.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestAuctionService_Sell_RejectsBlankInput(t *testing.T) {
	service, _ := auctionFixture(t)

	cases := []SellInput{
		{PlayerID: "  ", TeamID: "t-lions", SoldPrice: 3000},
		{PlayerID: "p-opener", TeamID: "", SoldPrice: 3000},
		{PlayerID: "p-opener", TeamID: "t-lions", SoldPrice: 0},
	}
	for _, input := range cases {
		if _, err := service.Sell(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestAuctionService_MarkUnsold_IsTerminal(t *testing.T) {
	service, _ := auctionFixture(t)

	unsold, err := service.MarkUnsold(t.Context(), "p-quick")
	if err != nil {
		t.Fatalf("mark unsold failed: %v", err)
	}
	if !unsold.IsUnsold || unsold.IsSold {
		t.Fatalf("unexpected unsold player state: %+v", unsold)
	}

	if _, err := service.MarkUnsold(t.Context(), "p-quick"); !errors.Is(err, auction.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved on double unsold, got %v", err)
	}
	if _, err := service.Sell(t.Context(), SellInput{PlayerID: "p-quick", TeamID: "t-hawks", SoldPrice: 2000}); !errors.Is(err, auction.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved on sell after unsold, got %v", err)
	}
}

func TestAuctionService_NextPlayer_RegistrationOrderUntilComplete(t *testing.T) {
	service, _ := auctionFixture(t)

	next, err := service.NextPlayer(t.Context())
	if err != nil {
		t.Fatalf("next player failed: %v", err)
	}
	if next.ID != "p-opener" {
		t.Fatalf("expected p-opener first, got %s", next.ID)
	}

	if _, err := service.Sell(t.Context(), SellInput{PlayerID: "p-opener", TeamID: "t-hawks", SoldPrice: 3000}); err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if _, err := service.MarkUnsold(t.Context(), "p-quick"); err != nil {
		t.Fatalf("mark unsold failed: %v", err)
	}

	next, err = service.NextPlayer(t.Context())
	if err != nil {
		t.Fatalf("next player failed: %v", err)
	}
	if next.ID != "p-allround" {
		t.Fatalf("expected p-allround after two resolutions, got %s", next.ID)
	}

	if _, err := service.Sell(t.Context(), SellInput{PlayerID: "p-allround", TeamID: "t-hawks", SoldPrice: 5000}); err != nil {
		t.Fatalf("sell failed: %v", err)
	}

	if _, err := service.NextPlayer(t.Context()); !errors.Is(err, ErrAuctionComplete) {
		t.Fatalf("expected ErrAuctionComplete, got %v", err)
	}
}

func TestAuctionService_Summary_Reconciles(t *testing.T) {
	service, _ := auctionFixture(t)

	if _, err := service.Sell(t.Context(), SellInput{PlayerID: "p-opener", TeamID: "t-lions", SoldPrice: 3000}); err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if _, err := service.Sell(t.Context(), SellInput{PlayerID: "p-allround", TeamID: "t-hawks", SoldPrice: 7500}); err != nil {
		t.Fatalf("sell failed: %v", err)
	}

	summaries, err := service.Summary(t.Context())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	var spent int64
	initialByTeam := map[string]int64{"t-lions": 5000, "t-hawks": 100000}
	for _, s := range summaries {
		spent += initialByTeam[s.TeamID] - s.RemainingPurse
	}
	if spent != 3000+7500 {
		t.Fatalf("summary does not reconcile with sold prices: spent=%d", spent)
	}
}

func TestAuctionService_SearchPlayers(t *testing.T) {
	service, _ := auctionFixture(t)

	empty, err := service.SearchPlayers(t.Context(), "   ")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected blank query to return no players, got %d", len(empty))
	}

	byName, err := service.SearchPlayers(t.Context(), "rath")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != "p-opener" {
		t.Fatalf("expected name match on p-opener, got %+v", byName)
	}

	byRole, err := service.SearchPlayers(t.Context(), "bowler")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byRole) != 1 || byRole[0].ID != "p-quick" {
		t.Fatalf("expected role match on p-quick, got %+v", byRole)
	}
}
