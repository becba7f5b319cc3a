package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/wicketbid/cricket-auction/internal/domain/auction"
	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/domain/team"
	"github.com/wicketbid/cricket-auction/internal/infrastructure/repository/memory"
	idgen "github.com/wicketbid/cricket-auction/internal/platform/id"
	"github.com/wicketbid/cricket-auction/internal/platform/logging"
	"github.com/wicketbid/cricket-auction/internal/usecase"
)

func newTestRouter(t *testing.T, adminToken string) http.Handler {
	t.Helper()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	players := []player.Player{
		{ID: "p-opener", Name: "Sunil Rathore", Role: player.RoleBatsman, BasePrice: 3000, CreatedAt: base, UpdatedAt: base},
		{ID: "p-quick", Name: "Zaheer Ansari", Role: player.RoleBowler, BasePrice: 2000, ImageURL: "https://img.example/zaheer.png", CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second)},
	}
	teams := []team.Team{
		{ID: "t-lions", Name: "Lions", CaptainName: "A", InitialPurse: 5000, RemainingPurse: 5000, CreatedAt: base, UpdatedAt: base},
		{ID: "t-hawks", Name: "Hawks", CaptainName: "B", CaptainImageURL: "https://img.example/hawks-captain.png", InitialPurse: 100000, RemainingPurse: 100000, CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute)},
	}
	store := memory.NewStore(players, teams)

	logger := logging.NewNop()
	rosterSvc := usecase.NewRosterService(store, store.TeamRepository(), auction.DefaultRules(), idgen.NewRandomGenerator(), logger)
	auctionSvc := usecase.NewAuctionService(store, store, logger)
	importSvc := usecase.NewImportService(rosterSvc, 4, logger)

	handler := NewHandler(auctionSvc, rosterSvc, importSvc, nil, logger)
	return NewRouter(handler, logger, []string{"*"}, adminToken)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, header http.Header) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("unmarshal %s %s response: %v", method, path, err)
		}
	}

	return rec, decoded
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, "")

	rec, body := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got, _ := body["status"].(string); got != "ok" {
		t.Fatalf("expected status=ok, got %v", body["status"])
	}
}

type failingPinger struct {
	err error
}

func (p failingPinger) Ping(context.Context) error {
	return p.err
}

func TestRouter_Healthz_ReportsStorageOutage(t *testing.T) {
	logger := logging.NewNop()
	store := memory.NewStore(nil, nil)
	rosterSvc := usecase.NewRosterService(store, store.TeamRepository(), auction.DefaultRules(), idgen.NewRandomGenerator(), logger)
	auctionSvc := usecase.NewAuctionService(store, store, logger)
	importSvc := usecase.NewImportService(rosterSvc, 1, logger)

	handler := NewHandler(auctionSvc, rosterSvc, importSvc, failingPinger{err: errors.New("connection refused")}, logger)
	router := NewRouter(handler, logger, []string{"*"}, "")

	rec, body := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "storage unreachable") {
		t.Fatalf("unexpected error message %q", msg)
	}
	if strings.Contains(msg, "connection refused") {
		t.Fatalf("driver detail leaked to client: %q", msg)
	}
}

func TestRouter_SellFlow(t *testing.T) {
	router := newTestRouter(t, "")

	rec, body := doJSON(t, router, http.MethodPut, "/api/auction/players/sell",
		`{"playerId":"p-opener","teamId":"t-lions","soldPrice":5000}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got, _ := body["teamId"].(string); got != "t-lions" {
		t.Fatalf("expected teamId=t-lions, got %v", body["teamId"])
	}
	if got, _ := body["soldPrice"].(float64); got != 5000 {
		t.Fatalf("expected soldPrice=5000, got %v", body["soldPrice"])
	}
	if got, _ := body["isSold"].(bool); !got {
		t.Fatalf("expected isSold=true, got %v", body["isSold"])
	}

	// Double sell is a conflict with the ledger error surfaced verbatim.
	rec, body = doJSON(t, router, http.MethodPut, "/api/auction/players/sell",
		`{"playerId":"p-opener","teamId":"t-hawks","soldPrice":3000}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "already sold or unsold") {
		t.Fatalf("unexpected error message %v", body["error"])
	}
}

func TestRouter_SellValidationFailures(t *testing.T) {
	router := newTestRouter(t, "")

	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{"playerId":`, http.StatusBadRequest},
		{"unknown field", `{"playerId":"p-opener","teamId":"t-lions","soldPrice":3000,"bid":1}`, http.StatusBadRequest},
		{"below floor", `{"playerId":"p-opener","teamId":"t-hawks","soldPrice":2000}`, http.StatusBadRequest},
		{"insufficient purse", `{"playerId":"p-opener","teamId":"t-lions","soldPrice":5001}`, http.StatusConflict},
		{"unknown player", `{"playerId":"p-ghost","teamId":"t-lions","soldPrice":3000}`, http.StatusNotFound},
		{"unknown team", `{"playerId":"p-opener","teamId":"t-ghost","soldPrice":3000}`, http.StatusNotFound},
	}

	for _, tc := range cases {
		rec, body := doJSON(t, router, http.MethodPut, "/api/auction/players/sell", tc.body, nil)
		if rec.Code != tc.wantStatus {
			t.Fatalf("%s: expected status %d, got %d body=%s", tc.name, tc.wantStatus, rec.Code, rec.Body.String())
		}
		if msg, _ := body["error"].(string); msg == "" {
			t.Fatalf("%s: expected error message in body, got %s", tc.name, rec.Body.String())
		}
	}
}

func TestRouter_NextPlayerAndUnsold(t *testing.T) {
	router := newTestRouter(t, "")

	rec, body := doJSON(t, router, http.MethodGet, "/api/auction/next-player", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got, _ := body["id"].(string); got != "p-opener" {
		t.Fatalf("expected p-opener first, got %v", body["id"])
	}
	if body["teamId"] != nil || body["soldPrice"] != nil {
		t.Fatalf("expected null teamId/soldPrice for unresolved player, got %s", rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/api/auction/players/p-opener/unsold", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	rec, _ = doJSON(t, router, http.MethodPut, "/api/auction/players/p-quick/unsold", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodGet, "/api/auction/next-player", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 once pool is resolved, got %d", rec.Code)
	}
	if msg, _ := body["error"].(string); msg != "auction complete" {
		t.Fatalf("expected error=auction complete, got %v", body["error"])
	}
}

func TestRouter_SummaryAndTeamDetail(t *testing.T) {
	router := newTestRouter(t, "")

	rec, _ := doJSON(t, router, http.MethodPut, "/api/auction/players/sell",
		`{"playerId":"p-quick","teamId":"t-hawks","soldPrice":2500}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sell failed with status %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/auction/summary", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var summaries []map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 team summaries, got %d", len(summaries))
	}
	if got, _ := summaries[1]["remainingPurse"].(float64); got != 97500 {
		t.Fatalf("expected hawks purse 97500, got %v", summaries[1]["remainingPurse"])
	}
	if got, _ := summaries[1]["totalPlayers"].(float64); got != 1 {
		t.Fatalf("expected hawks to own 1 player, got %v", summaries[1]["totalPlayers"])
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/auction/teams/t-hawks", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	players, _ := body["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("expected 1 squad player, got %v", body["players"])
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/auction/teams/t-ghost", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown team, got %d", rec.Code)
	}
}

func TestRouter_TeamListCarriesSquadAndPurse(t *testing.T) {
	router := newTestRouter(t, "")

	rec, _ := doJSON(t, router, http.MethodPut, "/api/auction/players/sell",
		`{"playerId":"p-quick","teamId":"t-hawks","soldPrice":2500}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sell failed with status %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/auction/teams", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var teams []map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &teams); err != nil {
		t.Fatalf("unmarshal teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}

	lions, hawks := teams[0], teams[1]

	// The list view renders currentPurse, captainImage and players directly.
	if got, _ := hawks["currentPurse"].(float64); got != 97500 {
		t.Fatalf("expected hawks currentPurse=97500, got %v", hawks["currentPurse"])
	}
	if got, _ := hawks["remainingPurse"].(float64); got != 97500 {
		t.Fatalf("expected hawks remainingPurse=97500, got %v", hawks["remainingPurse"])
	}
	if got, _ := hawks["captainImage"].(string); got != "https://img.example/hawks-captain.png" {
		t.Fatalf("expected captainImage, got %v", hawks["captainImage"])
	}

	squad, _ := hawks["players"].([]any)
	if len(squad) != 1 {
		t.Fatalf("expected 1 hawks squad player, got %v", hawks["players"])
	}
	bought, _ := squad[0].(map[string]any)
	if got, _ := bought["playerImageUrl"].(string); got != "https://img.example/zaheer.png" {
		t.Fatalf("expected playerImageUrl, got %v", bought["playerImageUrl"])
	}

	// Teams with no purchases still carry an empty squad, not null.
	emptySquad, ok := lions["players"].([]any)
	if !ok || len(emptySquad) != 0 {
		t.Fatalf("expected empty players array for lions, got %v", lions["players"])
	}
}

func TestRouter_Search(t *testing.T) {
	router := newTestRouter(t, "")

	rec, _ := doJSON(t, router, http.MethodGet, "/api/auction/search?q=", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var results []any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("unmarshal search results: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result for blank query, got %d", len(results))
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/auction/search?q=bowler", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("unmarshal search results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one bowler, got %d", len(results))
	}
}

func TestRouter_CreatePlayerAndImport(t *testing.T) {
	router := newTestRouter(t, "")

	rec, body := doJSON(t, router, http.MethodPost, "/api/auction/players",
		`{"name":"Raghav Iyer","role":"batsman","basePrice":3000}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got, _ := body["role"].(string); got != "BATSMAN" {
		t.Fatalf("expected normalized role BATSMAN, got %v", body["role"])
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/auction/players/import",
		`{"players":[{"name":"A","role":"BOWLER","basePrice":2000},{"name":"B","role":"KEEPER","basePrice":2000}]}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got, _ := body["createdCount"].(float64); got != 1 {
		t.Fatalf("expected createdCount=1, got %v", body["createdCount"])
	}
	if got, _ := body["failedCount"].(float64); got != 1 {
		t.Fatalf("expected failedCount=1, got %v", body["failedCount"])
	}
}

func TestRouter_AdminTokenGuard(t *testing.T) {
	router := newTestRouter(t, "hammer-secret")

	// Reads stay public.
	rec, _ := doJSON(t, router, http.MethodGet, "/api/auction/summary", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public read to pass, got %d", rec.Code)
	}

	rec, body := doJSON(t, router, http.MethodPut, "/api/auction/players/sell",
		`{"playerId":"p-opener","teamId":"t-lions","soldPrice":5000}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Fatalf("expected error message, got %s", rec.Body.String())
	}

	header := http.Header{}
	header.Set("X-Admin-Token", "hammer-secret")
	rec, _ = doJSON(t, router, http.MethodPut, "/api/auction/players/sell",
		`{"playerId":"p-opener","teamId":"t-lions","soldPrice":5000}`, header)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d body=%s", rec.Code, rec.Body.String())
	}
}
