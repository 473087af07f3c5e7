package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	qb "github.com/riskibarqy/rl-fantasy/internal/platform/querybuilder"
)

type WeekRepository struct {
	db *sqlx.DB
}

var weekSelectColumns = []string{
	"id",
	"status",
	"transfer_window_closes_at",
	"stats_locked_at",
	"scores_published_at",
	"created_at",
	"updated_at",
}

func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

func (r *WeekRepository) Create(ctx context.Context, w week.Week) error {
	query, args, err := qb.InsertModel("fantasy_weeks", newWeekTableModel(w)).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert week query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: id=%d", week.ErrWeekExists, w.ID)
		}
		return fmt.Errorf("insert week: %w", err)
	}
	return nil
}

func (r *WeekRepository) GetByID(ctx context.Context, id int) (week.Week, bool, error) {
	query, args, err := qb.Select(weekSelectColumns...).From("fantasy_weeks").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build select week query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *WeekRepository) Latest(ctx context.Context) (week.Week, bool, error) {
	query, args, err := qb.Select(weekSelectColumns...).From("fantasy_weeks").
		OrderBy("id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build select latest week query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *WeekRepository) getOne(ctx context.Context, query string, args []any) (week.Week, bool, error) {
	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("get week: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *WeekRepository) List(ctx context.Context) ([]week.Week, error) {
	query, args, err := qb.Select(weekSelectColumns...).From("fantasy_weeks").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weeks query: %w", err)
	}

	var rows []weekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weeks: %w", err)
	}

	out := make([]week.Week, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *WeekRepository) Update(ctx context.Context, w week.Week) error {
	query, args, err := qb.Update("fantasy_weeks").
		Set("status", string(w.Status)).
		Set("transfer_window_closes_at", w.TransferWindowClosesAt).
		Set("stats_locked_at", w.StatsLockedAt).
		Set("scores_published_at", w.ScoresPublishedAt).
		Set("updated_at", w.UpdatedAt).
		Where(qb.Eq("id", w.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update week query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update week: %w", err)
	}
	return requireAffected(result, week.ErrWeekNotFound, "id=%d", w.ID)
}

// WithWeek locks the week row with SELECT ... FOR UPDATE; a concurrent
// status change waits until fn's writes commit.
func (r *WeekRepository) WithWeek(ctx context.Context, id int, fn func(ctx context.Context, w week.Week) error) error {
	return withTx(ctx, r.db, "week guard", func(tx *sqlx.Tx) error {
		query, args, err := qb.Select(weekSelectColumns...).From("fantasy_weeks").
			Where(qb.Eq("id", id)).
			Limit(1).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock week query: %w", err)
		}

		var row weekTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: id=%d", week.ErrWeekNotFound, id)
			}
			return fmt.Errorf("lock week: %w", err)
		}
		return fn(contextWithTx(ctx, tx), row.toDomain())
	})
}
