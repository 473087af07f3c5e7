package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/rl-fantasy/internal/platform/querybuilder"
)

// BootstrapSeed loads the starting player pool into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	seed := memory.SeedPlayers()
	rows := make([]any, 0, len(seed))
	for _, p := range seed {
		p.CreatedAt, p.UpdatedAt = now, now
		rows = append(rows, newPlayerInsertModel(p))
	}

	query, args, err := qb.InsertModel("players", rows...).OnConflictDoNothing("public_id").ToSQL()
	if err != nil {
		return fmt.Errorf("build seed players query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed players: %w", err)
	}
	return nil
}
