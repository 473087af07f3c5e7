package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
	qb "github.com/riskibarqy/rl-fantasy/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// ReplaceWeekScores deletes and rewrites the week inside one transaction.
func (r *ScoreRepository) ReplaceWeekScores(ctx context.Context, weekID int, scores []scoring.TeamScore) error {
	rows := make([][]any, 0, len(scores))
	for _, s := range scores {
		breakdown, err := encodeBreakdown(s.Breakdown)
		if err != nil {
			return fmt.Errorf("roster=%s: %w", s.RosterID, err)
		}
		rows = append(rows, []any{weekID, s.RosterID, s.UserID, s.RosterName, s.TotalPoints, breakdown, s.CreatedAt})
	}

	return withTx(ctx, r.db, "replace week scores", func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := qb.DeleteFrom("fantasy_week_scores").
			Where(qb.Eq("week_id", weekID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete week scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete week scores week=%d: %w", weekID, err)
		}
		if len(rows) == 0 {
			return nil
		}

		builder := qb.InsertInto("fantasy_week_scores").Columns(weekScoreColumns...)
		for _, row := range rows {
			builder.Values(row...)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert week scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert week scores week=%d: %w", weekID, err)
		}
		return nil
	})
}

func (r *ScoreRepository) ListByWeek(ctx context.Context, weekID int) ([]scoring.TeamScore, error) {
	query, args, err := qb.Select(weekScoreSelectColumns()...).From("fantasy_week_scores").
		Where(qb.Eq("week_id", weekID)).
		OrderBy("total_points DESC", "roster_name", "roster_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select week scores query: %w", err)
	}
	return r.selectScores(ctx, query, args)
}

func (r *ScoreRepository) ListByRoster(ctx context.Context, rosterID string) ([]scoring.TeamScore, error) {
	query, args, err := qb.Select(weekScoreSelectColumns()...).From("fantasy_week_scores").
		Where(qb.Eq("roster_public_id", rosterID)).
		OrderBy("week_id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster scores query: %w", err)
	}
	return r.selectScores(ctx, query, args)
}

func (r *ScoreRepository) selectScores(ctx context.Context, query string, args []any) ([]scoring.TeamScore, error) {
	var rows []weekScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select week scores: %w", err)
	}

	out := make([]scoring.TeamScore, 0, len(rows))
	for _, row := range rows {
		score, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, score)
	}
	return out, nil
}

// weekScoreSelectColumns reads the jsonb breakdown back as text.
func weekScoreSelectColumns() []string {
	cols := make([]string, 0, len(weekScoreColumns))
	for _, c := range weekScoreColumns {
		if c == "breakdown" {
			c = "breakdown::text AS breakdown"
		}
		cols = append(cols, c)
	}
	return cols
}
