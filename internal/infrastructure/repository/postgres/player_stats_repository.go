package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	qb "github.com/riskibarqy/rl-fantasy/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

type playerWeekStatsTableModel struct {
	WeekID        int    `db:"week_id"`
	PlayerID      string `db:"player_public_id"`
	GamesPlayed   int    `db:"games_played"`
	Goals         int    `db:"goals"`
	Assists       int    `db:"assists"`
	Saves         int    `db:"saves"`
	Shots         int    `db:"shots"`
	DemosReceived int    `db:"demos_received"`
}

var playerWeekStatsColumns = []string{
	"week_id",
	"player_public_id",
	"games_played",
	"goals",
	"assists",
	"saves",
	"shots",
	"demos_received",
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) UpsertWeekStats(ctx context.Context, weekID int, stats []playerstats.PlayerWeekStats) error {
	if len(stats) == 0 {
		return nil
	}

	builder := qb.InsertInto("player_week_stats").
		Columns(playerWeekStatsColumns...).
		OnConflictUpdate(playerWeekStatsColumns[:2], playerWeekStatsColumns[2:]...).
		Touch("updated_at")
	for _, s := range stats {
		builder.Values(weekID, s.PlayerID, s.GamesPlayed, s.Goals, s.Assists, s.Saves, s.Shots, s.DemosReceived)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert player week stats query: %w", err)
	}

	if _, err := execerFor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player week stats week=%d: %w", weekID, err)
	}
	return nil
}

func (r *PlayerStatsRepository) GetWeekStats(ctx context.Context, weekID int) (playerstats.WeekStats, error) {
	query, args, err := qb.Select(playerWeekStatsColumns...).From("player_week_stats").
		Where(qb.Eq("week_id", weekID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player week stats query: %w", err)
	}

	var rows []playerWeekStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player week stats week=%d: %w", weekID, err)
	}

	out := make(playerstats.WeekStats, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = playerstats.PlayerWeekStats{
			PlayerID:    row.PlayerID,
			GamesPlayed: row.GamesPlayed,
			StatLine: playerstats.StatLine{
				Goals:         row.Goals,
				Assists:       row.Assists,
				Saves:         row.Saves,
				Shots:         row.Shots,
				DemosReceived: row.DemosReceived,
			},
		}
	}
	return out, nil
}
