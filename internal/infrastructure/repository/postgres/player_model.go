package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
)

type playerTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	Name       string         `db:"name"`
	SourceTeam string         `db:"source_team"`
	Price      int64          `db:"price"`
	IsActive   bool           `db:"is_active"`
	Aliases    pq.StringArray `db:"aliases"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID   string         `db:"public_id"`
	Name       string         `db:"name"`
	SourceTeam string         `db:"source_team"`
	Price      int64          `db:"price"`
	IsActive   bool           `db:"is_active"`
	Aliases    pq.StringArray `db:"aliases"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:         m.PublicID,
		Name:       m.Name,
		SourceTeam: player.SourceTeam(m.SourceTeam),
		Price:      m.Price,
		IsActive:   m.IsActive,
		Aliases:    append([]string(nil), m.Aliases...),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func newPlayerInsertModel(p player.Player) playerInsertModel {
	aliases := p.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return playerInsertModel{
		PublicID:   p.ID,
		Name:       p.Name,
		SourceTeam: string(p.SourceTeam),
		Price:      p.Price,
		IsActive:   p.IsActive,
		Aliases:    pq.StringArray(aliases),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
