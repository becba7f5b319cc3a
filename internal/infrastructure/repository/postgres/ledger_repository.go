package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/wicketbid/cricket-auction/internal/domain/auction"
	"github.com/wicketbid/cricket-auction/internal/domain/player"
)

// LedgerRepository implements auction.Ledger on top of PostgreSQL.
// Sales run inside a transaction that locks the player row first and the
// team row second, so concurrent bids on the same player or team serialize
// in a fixed order and cannot deadlock each other.
type LedgerRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db, now: time.Now}
}

var _ auction.Ledger = (*LedgerRepository)(nil)

func (r *LedgerRepository) Sell(ctx context.Context, playerID, teamID string, soldPrice int64) (player.Player, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, errors.Wrap(err, "begin sell transaction")
	}
	defer func() { _ = tx.Rollback() }()

	p, err := lockPlayer(ctx, tx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	var teamRow teamTableModel
	query := `SELECT ` + teamSelectColumns + `
		FROM teams
		WHERE id = $1
		FOR UPDATE`
	if err := tx.GetContext(ctx, &teamRow, query, teamID); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("%w: team=%s", auction.ErrTeamNotFound, teamID)
		}
		return player.Player{}, errors.Wrapf(err, "lock team %s", teamID)
	}
	t := teamRow.toDomain()

	if err := auction.ValidateSale(p, t, soldPrice); err != nil {
		return player.Player{}, err
	}

	now := r.now().UTC()

	if _, err := tx.ExecContext(ctx,
		`UPDATE players
		SET team_id = $2, sold_price = $3, is_sold = TRUE, updated_at = $4
		WHERE id = $1`,
		playerID, teamID, soldPrice, now,
	); err != nil {
		return player.Player{}, errors.Wrapf(err, "mark player %s sold", playerID)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE teams
		SET remaining_purse = remaining_purse - $2, updated_at = $3
		WHERE id = $1`,
		teamID, soldPrice, now,
	); err != nil {
		return player.Player{}, errors.Wrapf(err, "debit team %s purse", teamID)
	}

	if err := tx.Commit(); err != nil {
		return player.Player{}, errors.Wrap(err, "commit sell transaction")
	}

	p.TeamID = teamID
	p.SoldPrice = soldPrice
	p.IsSold = true
	p.UpdatedAt = now

	return p, nil
}

func (r *LedgerRepository) MarkUnsold(ctx context.Context, playerID string) (player.Player, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, errors.Wrap(err, "begin unsold transaction")
	}
	defer func() { _ = tx.Rollback() }()

	p, err := lockPlayer(ctx, tx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if p.Resolved() {
		return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrAlreadyResolved, playerID)
	}

	now := r.now().UTC()

	if _, err := tx.ExecContext(ctx,
		`UPDATE players
		SET is_unsold = TRUE, updated_at = $2
		WHERE id = $1`,
		playerID, now,
	); err != nil {
		return player.Player{}, errors.Wrapf(err, "mark player %s unsold", playerID)
	}

	if err := tx.Commit(); err != nil {
		return player.Player{}, errors.Wrap(err, "commit unsold transaction")
	}

	p.IsUnsold = true
	p.UpdatedAt = now

	return p, nil
}

func (r *LedgerRepository) NextUnresolved(ctx context.Context) (player.Player, bool, error) {
	query := `SELECT ` + playerSelectColumns + `
		FROM players
		WHERE NOT is_sold AND NOT is_unsold
		ORDER BY created_at ASC, id ASC
		LIMIT 1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, errors.Wrap(err, "next unresolved player")
	}

	return row.toDomain(), true, nil
}

func (r *LedgerRepository) Summary(ctx context.Context) ([]auction.TeamSummary, error) {
	query := `SELECT
		t.id AS team_id,
		t.name AS name,
		COUNT(p.id) AS total_players,
		t.remaining_purse AS remaining_purse
	FROM teams t
	LEFT JOIN players p ON p.team_id = t.id AND p.is_sold
	GROUP BY t.id, t.name, t.remaining_purse, t.created_at
	ORDER BY t.created_at ASC, t.id ASC`

	var rows []struct {
		TeamID         string `db:"team_id"`
		Name           string `db:"name"`
		TotalPlayers   int    `db:"total_players"`
		RemainingPurse int64  `db:"remaining_purse"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "auction summary")
	}

	out := make([]auction.TeamSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, auction.TeamSummary{
			TeamID:         row.TeamID,
			Name:           row.Name,
			TotalPlayers:   row.TotalPlayers,
			RemainingPurse: row.RemainingPurse,
		})
	}

	return out, nil
}

func lockPlayer(ctx context.Context, tx *sqlx.Tx, playerID string) (player.Player, error) {
	query := `SELECT ` + playerSelectColumns + `
		FROM players
		WHERE id = $1
		FOR UPDATE`

	var row playerTableModel
	if err := tx.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrPlayerNotFound, playerID)
		}
		return player.Player{}, errors.Wrapf(err, "lock player %s", playerID)
	}

	return row.toDomain(), nil
}
