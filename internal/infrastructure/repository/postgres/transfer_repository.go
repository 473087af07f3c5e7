package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/transfer"
	qb "github.com/riskibarqy/rl-fantasy/internal/platform/querybuilder"
)

type TransferRepository struct {
	db *sqlx.DB
}

type transferTableModel struct {
	PublicID       string    `db:"public_id"`
	RosterID       string    `db:"roster_public_id"`
	WeekID         int       `db:"week_id"`
	Slot           string    `db:"slot"`
	SoldPlayerID   string    `db:"sold_player_public_id"`
	SoldPrice      int64     `db:"sold_price"`
	BoughtPlayerID string    `db:"bought_player_public_id"`
	BoughtPrice    int64     `db:"bought_price"`
	CreatedAt      time.Time `db:"created_at"`
}

var transferSelectColumns = []string{
	"public_id",
	"roster_public_id",
	"week_id",
	"slot",
	"sold_player_public_id",
	"sold_price",
	"bought_player_public_id",
	"bought_price",
	"created_at",
}

func NewTransferRepository(db *sqlx.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, t transfer.Transfer) error {
	query, args, err := qb.InsertModel("fantasy_transfers", transferTableModel{
		PublicID:       t.ID,
		RosterID:       t.RosterID,
		WeekID:         t.WeekID,
		Slot:           string(t.Slot),
		SoldPlayerID:   t.SoldPlayerID,
		SoldPrice:      t.SoldPrice,
		BoughtPlayerID: t.BoughtPlayerID,
		BoughtPrice:    t.BoughtPrice,
		CreatedAt:      t.CreatedAt,
	}).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert transfer query: %w", err)
	}
	if _, err := execerFor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

func (r *TransferRepository) ListByRoster(ctx context.Context, rosterID string) ([]transfer.Transfer, error) {
	query, args, err := qb.Select(transferSelectColumns...).From("fantasy_transfers").
		Where(qb.Eq("roster_public_id", rosterID)).
		OrderBy("id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select transfers query: %w", err)
	}

	var rows []transferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select transfers: %w", err)
	}

	out := make([]transfer.Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, transfer.Transfer{
			ID:             row.PublicID,
			RosterID:       row.RosterID,
			WeekID:         row.WeekID,
			Slot:           fantasy.Slot(row.Slot),
			SoldPlayerID:   row.SoldPlayerID,
			SoldPrice:      row.SoldPrice,
			BoughtPlayerID: row.BoughtPlayerID,
			BoughtPrice:    row.BoughtPrice,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}
