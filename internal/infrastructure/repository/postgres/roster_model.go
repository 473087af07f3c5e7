package postgres

import (
	"time"

	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
)

type rosterTableModel struct {
	ID              int64     `db:"id"`
	PublicID        string    `db:"public_id"`
	UserID          string    `db:"user_id"`
	Name            string    `db:"name"`
	BudgetRemaining int64     `db:"budget_remaining"`
	CreatedInWeek   int       `db:"created_in_week"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type rosterInsertModel struct {
	PublicID        string    `db:"public_id"`
	UserID          string    `db:"user_id"`
	Name            string    `db:"name"`
	BudgetRemaining int64     `db:"budget_remaining"`
	CreatedInWeek   int       `db:"created_in_week"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type rosterSlotTableModel struct {
	RosterID   string `db:"roster_public_id"`
	Slot       string `db:"slot"`
	PlayerID   string `db:"player_public_id"`
	PlayerName string `db:"player_name"`
	SourceTeam string `db:"source_team"`
	PricePaid  int64  `db:"price_paid"`
}

var rosterSlotColumns = []string{
	"roster_public_id",
	"slot",
	"player_public_id",
	"player_name",
	"source_team",
	"price_paid",
}

func (m rosterTableModel) toDomain(slots []fantasy.SlotAssignment) fantasy.Roster {
	return fantasy.Roster{
		ID:              m.PublicID,
		UserID:          m.UserID,
		Name:            m.Name,
		BudgetRemaining: m.BudgetRemaining,
		CreatedInWeek:   m.CreatedInWeek,
		Slots:           fantasy.SortSlots(slots),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (m rosterSlotTableModel) toDomain() fantasy.SlotAssignment {
	return fantasy.SlotAssignment{
		Slot:       fantasy.Slot(m.Slot),
		PlayerID:   m.PlayerID,
		PlayerName: m.PlayerName,
		SourceTeam: player.SourceTeam(m.SourceTeam),
		PricePaid:  m.PricePaid,
	}
}

func newRosterInsertModel(r fantasy.Roster) rosterInsertModel {
	return rosterInsertModel{
		PublicID:        r.ID,
		UserID:          r.UserID,
		Name:            r.Name,
		BudgetRemaining: r.BudgetRemaining,
		CreatedInWeek:   r.CreatedInWeek,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
