package httpapi

import (
	"net/http"

	"github.com/wicketbid/cricket-auction/internal/usecase"
)

type sellRequest struct {
	PlayerID  string `json:"playerId" validate:"required"`
	TeamID    string `json:"teamId" validate:"required"`
	SoldPrice int64  `json:"soldPrice" validate:"required,gt=0"`
}

// GetSummary returns the per-team purse and roster-count projection.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSummary")
	defer span.End()

	summaries, err := h.auctionService.Summary(ctx)
	if err != nil {
		logHandlerError(ctx, h.logger, "GetSummary", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, toTeamSummaryDTOs(summaries))
}

// GetNextPlayer returns the earliest-registered player that is still
// unresolved, or 404 once every player is sold or unsold.
func (h *Handler) GetNextPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNextPlayer")
	defer span.End()

	p, err := h.auctionService.NextPlayer(ctx)
	if err != nil {
		logHandlerError(ctx, h.logger, "GetNextPlayer", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, toPlayerDTO(p))
}

// SellPlayer assigns a player to a team at the hammer price, debiting the
// team purse in the same atomic step.
func (h *Handler) SellPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SellPlayer")
	defer span.End()

	var req sellRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.auctionService.Sell(ctx, usecase.SellInput{
		PlayerID:  req.PlayerID,
		TeamID:    req.TeamID,
		SoldPrice: req.SoldPrice,
	})
	if err != nil {
		logHandlerError(ctx, h.logger, "SellPlayer", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, toPlayerDTO(p))
}

// MarkPlayerUnsold retires an unresolved player from the pool without a sale.
func (h *Handler) MarkPlayerUnsold(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkPlayerUnsold")
	defer span.End()

	p, err := h.auctionService.MarkUnsold(ctx, r.PathValue("id"))
	if err != nil {
		logHandlerError(ctx, h.logger, "MarkPlayerUnsold", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, toPlayerDTO(p))
}

// SearchPlayers filters the pool by a case-insensitive substring match on
// player name or role. A blank query returns an empty result.
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	players, err := h.auctionService.SearchPlayers(ctx, r.URL.Query().Get("q"))
	if err != nil {
		logHandlerError(ctx, h.logger, "SearchPlayers", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, toPlayerDTOs(players))
}
