package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	qb "github.com/riskibarqy/rl-fantasy/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

var rosterSelectColumns = []string{
	"id",
	"public_id",
	"user_id",
	"name",
	"budget_remaining",
	"created_in_week",
	"created_at",
	"updated_at",
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByID(ctx context.Context, rosterID string) (fantasy.Roster, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", rosterID))
}

func (r *RosterRepository) GetByUser(ctx context.Context, userID string) (fantasy.Roster, bool, error) {
	return r.getOne(ctx, qb.Eq("user_id", userID))
}

func (r *RosterRepository) getOne(ctx context.Context, cond qb.Condition) (fantasy.Roster, bool, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From("fantasy_rosters").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return fantasy.Roster{}, false, fmt.Errorf("build select roster query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Roster{}, false, nil
		}
		return fantasy.Roster{}, false, fmt.Errorf("get roster: %w", err)
	}

	slots, err := selectRosterSlots(ctx, r.db, []string{row.PublicID})
	if err != nil {
		return fantasy.Roster{}, false, err
	}
	return row.toDomain(slots[row.PublicID]), true, nil
}

func (r *RosterRepository) List(ctx context.Context) ([]fantasy.Roster, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From("fantasy_rosters").
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rosters query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rosters: %w", err)
	}
	if len(rows) == 0 {
		return []fantasy.Roster{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	slots, err := selectRosterSlots(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]fantasy.Roster, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(slots[row.PublicID]))
	}
	return out, nil
}

func (r *RosterRepository) Create(ctx context.Context, roster fantasy.Roster) error {
	return withTx(ctx, r.db, "roster create", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertModel("fantasy_rosters", newRosterInsertModel(roster)).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert roster query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: user=%s", fantasy.ErrRosterExists, roster.UserID)
			}
			return fmt.Errorf("insert roster: %w", err)
		}
		return insertRosterSlots(ctx, tx, roster)
	})
}

// Mutate locks the roster row with SELECT ... FOR UPDATE, so concurrent
// mutations of the same roster run one after another.
func (r *RosterRepository) Mutate(ctx context.Context, rosterID string, fn fantasy.MutateFunc) (fantasy.Roster, error) {
	var out fantasy.Roster
	err := withTx(ctx, r.db, "roster mutate", func(tx *sqlx.Tx) error {
		query, args, err := qb.Select(rosterSelectColumns...).From("fantasy_rosters").
			Where(qb.Eq("public_id", rosterID)).
			Limit(1).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock roster query: %w", err)
		}

		var row rosterTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: id=%s", fantasy.ErrRosterNotFound, rosterID)
			}
			return fmt.Errorf("lock roster: %w", err)
		}

		slots, err := selectRosterSlots(ctx, tx, []string{row.PublicID})
		if err != nil {
			return err
		}
		working := row.toDomain(slots[row.PublicID])
		if err := fn(contextWithTx(ctx, tx), &working); err != nil {
			return err
		}

		updateQuery, updateArgs, err := qb.Update("fantasy_rosters").
			Set("name", working.Name).
			Set("budget_remaining", working.BudgetRemaining).
			Set("updated_at", working.UpdatedAt).
			Where(qb.Eq("public_id", row.PublicID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update roster query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
			return fmt.Errorf("update roster: %w", err)
		}

		deleteQuery, deleteArgs, err := qb.DeleteFrom("fantasy_roster_slots").
			Where(qb.Eq("roster_public_id", row.PublicID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete roster slots query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete roster slots: %w", err)
		}
		if err := insertRosterSlots(ctx, tx, working); err != nil {
			return err
		}

		out = working
		return nil
	})
	if err != nil {
		return fantasy.Roster{}, err
	}
	return out, nil
}

func selectRosterSlots(ctx context.Context, q sqlx.QueryerContext, rosterIDs []string) (map[string][]fantasy.SlotAssignment, error) {
	query, args, err := qb.Select(rosterSlotColumns...).From("fantasy_roster_slots").
		Where(qb.In("roster_public_id", stringSliceToAny(rosterIDs))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster slots query: %w", err)
	}

	var rows []rosterSlotTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster slots: %w", err)
	}

	out := make(map[string][]fantasy.SlotAssignment, len(rosterIDs))
	for _, row := range rows {
		out[row.RosterID] = append(out[row.RosterID], row.toDomain())
	}
	return out, nil
}

func insertRosterSlots(ctx context.Context, tx *sqlx.Tx, roster fantasy.Roster) error {
	if len(roster.Slots) == 0 {
		return nil
	}

	builder := qb.InsertInto("fantasy_roster_slots").Columns(rosterSlotColumns...)
	for _, a := range roster.Slots {
		builder.Values(roster.ID, string(a.Slot), a.PlayerID, a.PlayerName, string(a.SourceTeam), a.PricePaid)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert roster slots query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert roster slots roster=%s: %w", roster.ID, err)
	}
	return nil
}
