package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuctionRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.HandleFunc("GET /api/auction/summary", handler.GetSummary)
	mux.HandleFunc("GET /api/auction/next-player", handler.GetNextPlayer)
	mux.HandleFunc("GET /api/auction/search", handler.SearchPlayers)
	mux.HandleFunc("GET /api/auction/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/auction/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/auction/teams/{id}", handler.GetTeamDetail)

	mux.Handle("PUT /api/auction/players/sell", RequireAdminToken(adminToken, http.HandlerFunc(handler.SellPlayer)))
	mux.Handle("PUT /api/auction/players/{id}/unsold", RequireAdminToken(adminToken, http.HandlerFunc(handler.MarkPlayerUnsold)))
	mux.Handle("POST /api/auction/players", RequireAdminToken(adminToken, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("POST /api/auction/players/import", RequireAdminToken(adminToken, http.HandlerFunc(handler.ImportPlayers)))
	mux.Handle("POST /api/auction/teams", RequireAdminToken(adminToken, http.HandlerFunc(handler.CreateTeam)))
}
