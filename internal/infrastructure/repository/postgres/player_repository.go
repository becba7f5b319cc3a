package postgres

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/wicketbid/cricket-auction/internal/domain/player"
)

// PlayerRepository implements player.Repository on top of PostgreSQL.
type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

var _ player.Repository = (*PlayerRepository)(nil)

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query := `SELECT ` + playerSelectColumns + `
		FROM players
		ORDER BY created_at ASC, id ASC`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "list players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query := `SELECT ` + playerSelectColumns + `
		FROM players
		WHERE id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, errors.Wrapf(err, "get player %s", playerID)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query := `INSERT INTO players (
		id, name, role, base_price, mobile, description, stats, image_url,
		team_id, sold_price, is_sold, is_unsold, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	teamID := sql.NullString{String: item.TeamID, Valid: item.TeamID != ""}
	soldPrice := sql.NullInt64{Int64: item.SoldPrice, Valid: item.IsSold}

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, string(item.Role), item.BasePrice,
		item.Mobile, item.Description, item.Stats, item.ImageURL,
		teamID, soldPrice, item.IsSold, item.IsUnsold,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "create player %s", item.ID)
	}

	return nil
}
