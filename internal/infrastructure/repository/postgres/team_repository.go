package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/wicketbid/cricket-auction/internal/domain/team"
)

// TeamRepository implements team.Repository on top of PostgreSQL.
type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

var _ team.Repository = (*TeamRepository)(nil)

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query := `SELECT ` + teamSelectColumns + `
		FROM teams
		ORDER BY created_at ASC, id ASC`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "list teams")
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query := `SELECT ` + teamSelectColumns + `
		FROM teams
		WHERE id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, errors.Wrapf(err, "get team %s", teamID)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	query := `INSERT INTO teams (
		id, name, captain_name, captain_image_url,
		initial_purse, remaining_purse, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.CaptainName, item.CaptainImageURL,
		item.InitialPurse, item.RemainingPurse, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "create team %s", item.ID)
	}

	return nil
}
