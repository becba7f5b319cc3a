package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/wicketbid/cricket-auction/internal/domain/auction"
	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/domain/team"
	"github.com/wicketbid/cricket-auction/internal/platform/logging"
	"github.com/wicketbid/cricket-auction/internal/usecase"
)

// StoragePinger reports whether the backing store is reachable. A nil pinger
// means the backend has no connection to lose (the in-memory store).
type StoragePinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auctionService *usecase.AuctionService
	rosterService  *usecase.RosterService
	importService  *usecase.ImportService
	storage        StoragePinger
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	auctionService *usecase.AuctionService,
	rosterService *usecase.RosterService,
	importService *usecase.ImportService,
	storage StoragePinger,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		auctionService: auctionService,
		rosterService:  rosterService,
		importService:  importService,
		storage:        storage,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.storage != nil {
		if err := h.storage.Ping(ctx); err != nil {
			h.logger.ErrorContext(ctx, "storage ping failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: storage unreachable", usecase.ErrDependencyUnavailable))
			return
		}
	}

	writeData(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, "malformed JSON body")
	}
	if err := h.validator.StructCtx(r.Context(), dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type playerDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	BasePrice   int64   `json:"basePrice"`
	Mobile      string  `json:"mobile,omitempty"`
	Description string  `json:"description,omitempty"`
	Stats       string  `json:"stats,omitempty"`
	ImageURL    string  `json:"playerImageUrl,omitempty"`
	TeamID      *string `json:"teamId"`
	SoldPrice   *int64  `json:"soldPrice"`
	IsSold      bool    `json:"isSold"`
	IsUnsold    bool    `json:"isUnsold"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toPlayerDTO(p player.Player) playerDTO {
	dto := playerDTO{
		ID:          p.ID,
		Name:        p.Name,
		Role:        string(p.Role),
		BasePrice:   p.BasePrice,
		Mobile:      p.Mobile,
		Description: p.Description,
		Stats:       p.Stats,
		ImageURL:    p.ImageURL,
		IsSold:      p.IsSold,
		IsUnsold:    p.IsUnsold,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if p.IsSold {
		teamID := p.TeamID
		soldPrice := p.SoldPrice
		dto.TeamID = &teamID
		dto.SoldPrice = &soldPrice
	}
	return dto
}

func toPlayerDTOs(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, toPlayerDTO(p))
	}
	return out
}

// teamDTO serves the arena views directly, so the wire names follow what
// those views dereference: captainImage and currentPurse, with
// remainingPurse kept as an alias of the same number.
type teamDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CaptainName     string `json:"captainName,omitempty"`
	CaptainImageURL string `json:"captainImage,omitempty"`
	InitialPurse    int64  `json:"initialPurse"`
	RemainingPurse  int64  `json:"remainingPurse"`
	CurrentPurse    int64  `json:"currentPurse"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toTeamDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:              t.ID,
		Name:            t.Name,
		CaptainName:     t.CaptainName,
		CaptainImageURL: t.CaptainImageURL,
		InitialPurse:    t.InitialPurse,
		RemainingPurse:  t.RemainingPurse,
		CurrentPurse:    t.RemainingPurse,
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type teamDetailDTO struct {
	teamDTO
	Players []playerDTO `json:"players"`
}

type teamSummaryDTO struct {
	TeamID         string `json:"teamId"`
	Name           string `json:"name"`
	TotalPlayers   int    `json:"totalPlayers"`
	RemainingPurse int64  `json:"remainingPurse"`
}

func toTeamSummaryDTOs(summaries []auction.TeamSummary) []teamSummaryDTO {
	out := make([]teamSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, teamSummaryDTO{
			TeamID:         s.TeamID,
			Name:           s.Name,
			TotalPlayers:   s.TotalPlayers,
			RemainingPurse: s.RemainingPurse,
		})
	}
	return out
}

func logHandlerError(ctx context.Context, logger *logging.Logger, op string, err error) {
	if mapStatus(err) == http.StatusInternalServerError {
		logger.ErrorContext(ctx, "handler failed", "op", op, "error", err)
		return
	}
	logger.DebugContext(ctx, "request declined", "op", op, "reason", err)
}
