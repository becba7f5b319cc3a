package httpapi

import (
	"net/http"

	"github.com/wicketbid/cricket-auction/internal/usecase"
)

type createPlayerRequest struct {
	Name        string `json:"name" validate:"required"`
	Role        string `json:"role" validate:"required"`
	BasePrice   int64  `json:"basePrice" validate:"required,gt=0"`
	Mobile      string `json:"mobile,omitempty" validate:"omitempty,max=20"`
	Description string `json:"description,omitempty"`
	Stats       string `json:"stats,omitempty"`
	ImageURL    string `json:"playerImageUrl,omitempty" validate:"omitempty,url"`
}

type createTeamRequest struct {
	Name            string `json:"name" validate:"required"`
	CaptainName     string `json:"captainName,omitempty"`
	CaptainImageURL string `json:"captainImage,omitempty" validate:"omitempty,url"`
}

type importPlayersRequest struct {
	Players    []createPlayerRequest `json:"players" validate:"required,min=1,dive"`
	MaxWorkers int                   `json:"maxWorkers,omitempty" validate:"omitempty,gte=1,lte=64"`
}

func (req createPlayerRequest) toInput() usecase.CreatePlayerInput {
	return usecase.CreatePlayerInput{
		Name:        req.Name,
		Role:        req.Role,
		BasePrice:   req.BasePrice,
		Mobile:      req.Mobile,
		Description: req.Description,
		Stats:       req.Stats,
		ImageURL:    req.ImageURL,
	}
}

// ListPlayers returns every registered player in registration order.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.rosterService.ListPlayers(ctx)
	if err != nil {
		logHandlerError(ctx, h.logger, "ListPlayers", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, toPlayerDTOs(players))
}

// CreatePlayer registers a single player into the auction pool.
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.rosterService.CreatePlayer(ctx, req.toInput())
	if err != nil {
		logHandlerError(ctx, h.logger, "CreatePlayer", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusCreated, toPlayerDTO(p))
}

// ImportPlayers registers a whole batch of players in one request.
func (h *Handler) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportPlayers")
	defer span.End()

	var req importPlayersRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.ImportInput{MaxWorkers: req.MaxWorkers}
	input.Players = make([]usecase.CreatePlayerInput, 0, len(req.Players))
	for _, row := range req.Players {
		input.Players = append(input.Players, row.toInput())
	}

	result, err := h.importService.ImportPlayers(ctx, input)
	if err != nil {
		logHandlerError(ctx, h.logger, "ImportPlayers", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, result)
}

// ListTeams returns every registered franchise in registration order, each
// with its current squad so the list view can show purses and rosters.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	details, err := h.rosterService.ListTeamDetails(ctx)
	if err != nil {
		logHandlerError(ctx, h.logger, "ListTeams", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDetailDTO, 0, len(details))
	for _, d := range details {
		out = append(out, teamDetailDTO{
			teamDTO: toTeamDTO(d.Team),
			Players: toPlayerDTOs(d.Players),
		})
	}
	writeData(ctx, w, http.StatusOK, out)
}

// GetTeamDetail returns one team together with the players sold to it.
func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetail")
	defer span.End()

	detail, err := h.rosterService.GetTeamDetail(ctx, r.PathValue("id"))
	if err != nil {
		logHandlerError(ctx, h.logger, "GetTeamDetail", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, teamDetailDTO{
		teamDTO: toTeamDTO(detail.Team),
		Players: toPlayerDTOs(detail.Players),
	})
}

// CreateTeam registers a new franchise with a full purse.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	t, err := h.rosterService.CreateTeam(ctx, usecase.CreateTeamInput{
		Name:            req.Name,
		CaptainName:     req.CaptainName,
		CaptainImageURL: req.CaptainImageURL,
	})
	if err != nil {
		logHandlerError(ctx, h.logger, "CreateTeam", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusCreated, toTeamDTO(t))
}
