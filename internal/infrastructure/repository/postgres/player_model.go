package postgres

import (
	"database/sql"
	"time"

	"github.com/wicketbid/cricket-auction/internal/domain/player"
)

type playerTableModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Role        string         `db:"role"`
	BasePrice   int64          `db:"base_price"`
	Mobile      string         `db:"mobile"`
	Description string         `db:"description"`
	Stats       string         `db:"stats"`
	ImageURL    string         `db:"image_url"`
	TeamID      sql.NullString `db:"team_id"`
	SoldPrice   sql.NullInt64  `db:"sold_price"`
	IsSold      bool           `db:"is_sold"`
	IsUnsold    bool           `db:"is_unsold"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		Name:        m.Name,
		Role:        player.Role(m.Role),
		BasePrice:   m.BasePrice,
		Mobile:      m.Mobile,
		Description: m.Description,
		Stats:       m.Stats,
		ImageURL:    m.ImageURL,
		TeamID:      m.TeamID.String,
		SoldPrice:   m.SoldPrice.Int64,
		IsSold:      m.IsSold,
		IsUnsold:    m.IsUnsold,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

const playerSelectColumns = `
	id,
	name,
	role,
	base_price,
	mobile,
	description,
	stats,
	image_url,
	team_id,
	sold_price,
	is_sold,
	is_unsold,
	created_at,
	updated_at`
