package postgres

import (
	"time"

	"github.com/wicketbid/cricket-auction/internal/domain/team"
)

type teamTableModel struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	CaptainName     string    `db:"captain_name"`
	CaptainImageURL string    `db:"captain_image_url"`
	InitialPurse    int64     `db:"initial_purse"`
	RemainingPurse  int64     `db:"remaining_purse"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:              m.ID,
		Name:            m.Name,
		CaptainName:     m.CaptainName,
		CaptainImageURL: m.CaptainImageURL,
		InitialPurse:    m.InitialPurse,
		RemainingPurse:  m.RemainingPurse,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

const teamSelectColumns = `
	id,
	name,
	captain_name,
	captain_image_url,
	initial_purse,
	remaining_purse,
	created_at,
	updated_at`
